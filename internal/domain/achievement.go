package domain

const (
	AchievementHighPerformer        = "high-performer"
	AchievementFocusedWorker        = "focused-worker"
	AchievementProductivityMaster   = "productivity-master"
	AchievementStreakStarter        = "streak-starter"
	AchievementWeekWarrior          = "week-warrior"
	AchievementConsistencyKing      = "consistency-king"
	AchievementFocusMaster          = "focus-master"
	AchievementDistractionDestroyer = "distraction-destroyer"
	AchievementEarlyBird            = "early-bird"
	AchievementNightOwl             = "night-owl"
	AchievementLevelUp              = "level-up"
	AchievementProductivityGuru     = "productivity-guru"
)

// AchievementTitle is the notification title used for every unlock.
const AchievementTitle = "Achievement Unlocked!"

const defaultAchievementMessage = "New achievement earned!"

type Achievement struct {
	ID          string
	Name        string
	Description string
	Message     string
}

// AchievementCatalog lists every known achievement in display order.
var AchievementCatalog = []Achievement{
	{AchievementHighPerformer, "High Performer", "Achieve 80% productivity score", "High Performer - 80% productivity score!"},
	{AchievementFocusedWorker, "Focused Worker", "Spend 4+ hours on productive sites", "Focused Worker - 4+ productive hours!"},
	{AchievementProductivityMaster, "Productivity Master", "Achieve 90% productivity score", "Productivity Master - 90% score!"},
	{AchievementStreakStarter, "Streak Starter", "Maintain a 3-day productivity streak", ""},
	{AchievementWeekWarrior, "Week Warrior", "Complete a full productive week", ""},
	{AchievementConsistencyKing, "Consistency King", "Maintain 14-day productivity streak", ""},
	{AchievementFocusMaster, "Focus Master", "Complete 25+ minute focus sessions", ""},
	{AchievementDistractionDestroyer, "Distraction Destroyer", "Spend less than 1 hour on distracting sites", ""},
	{AchievementEarlyBird, "Early Bird", "Start productive work before 8 AM", ""},
	{AchievementNightOwl, "Night Owl", "Stay productive after 10 PM", ""},
	{AchievementLevelUp, "Level Up", "Reach level 5", ""},
	{AchievementProductivityGuru, "Productivity Guru", "Reach level 10", ""},
}

// LookupAchievement finds an achievement by id.
func LookupAchievement(id string) (Achievement, bool) {
	for _, a := range AchievementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// AchievementMessage returns the notification text for an unlocked id.
func AchievementMessage(id string) string {
	if a, ok := LookupAchievement(id); ok && a.Message != "" {
		return a.Message
	}
	return defaultAchievementMessage
}
