package api

import (
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/scoring"
	"github.com/alexanderramin/productiviquest/internal/tracker"
)

// ProblemDetail is the error body returned by every endpoint.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Browser event payloads.

type TabActivatedRequest struct {
	TabID    *int   `json:"tabId"`
	WindowID int    `json:"windowId"`
	URL      string `json:"url"`
}

type TabUpdatedRequest struct {
	TabID    *int   `json:"tabId"`
	WindowID int    `json:"windowId"`
	URL      string `json:"url"`
	Status   string `json:"status"`
	Active   bool   `json:"active"`
}

// WindowFocusRequest carries the focused window id; null or -1 means no
// browser window has focus.
type WindowFocusRequest struct {
	WindowID *int `json:"windowId"`
}

type EventAccepted struct {
	Dispatched bool `json:"dispatched"`
}

// Mutation payloads.

type GoalUpdateRequest struct {
	Value *float64 `json:"value"`
}

type CategoryDomainRequest struct {
	Domain string `json:"domain"`
}

type SettingsUpdateRequest struct {
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
	SoundEnabled  *bool   `json:"soundEnabled"`
}

type StreakRequest struct {
	Streak *int `json:"streak"`
}

type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// Read models.

type SessionResponse struct {
	ID         string    `json:"id"`
	Domain     string    `json:"domain"`
	Category   string    `json:"category"`
	DurationMs int64     `json:"durationMs"`
	Timestamp  time.Time `json:"timestamp"`
}

type DailyStatsResponse struct {
	Date              string            `json:"date"`
	TotalTimeMs       int64             `json:"totalTimeMs"`
	ProductiveTimeMs  int64             `json:"productiveTimeMs"`
	DistractingTimeMs int64             `json:"distractingTimeMs"`
	NeutralTimeMs     int64             `json:"neutralTimeMs"`
	Score             int               `json:"score"`
	Sessions          []SessionResponse `json:"sessions"`
}

// HourlyResponse holds tracked minutes per local hour of the current day,
// indexed 0-23.
type HourlyResponse struct {
	Date    string    `json:"date"`
	Minutes []float64 `json:"minutes"`
}

type ProgressionResponse struct {
	Level      int `json:"level"`
	Experience int `json:"experience"`
	Streak     int `json:"streak"`
	// LevelProgress is experience earned within the current level.
	LevelProgress int `json:"levelProgress"`
	LevelSize     int `json:"levelSize"`
}

type AchievementResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

type AchievementsResponse struct {
	Unlocked []string              `json:"unlocked"`
	Catalog  []AchievementResponse `json:"catalog"`
}

type GoalsResponse struct {
	DailyProductiveHours float64 `json:"dailyProductiveHours"`
	MaxDistractingHours  float64 `json:"maxDistractingHours"`
	FocusSessionMinutes  float64 `json:"focusSessionMinutes"`
}

type CategoriesResponse struct {
	Productive  []string `json:"productive"`
	Distracting []string `json:"distracting"`
	Neutral     []string `json:"neutral"`
}

type SettingsResponse struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	SoundEnabled  bool   `json:"soundEnabled"`
}

type GoalProgressResponse struct {
	ProductiveHours     float64 `json:"productiveHours"`
	DistractingHours    float64 `json:"distractingHours"`
	DailyGoalPct        float64 `json:"dailyGoalPct"`
	DistractingLimitPct float64 `json:"distractingLimitPct"`
	DailyGoalMet        bool    `json:"dailyGoalMet"`
	DistractingExceeded bool    `json:"distractingExceeded"`
}

type SnapshotResponse struct {
	DailyStats   DailyStatsResponse   `json:"dailyStats"`
	WeeklyStats  []DailyStatsResponse `json:"weeklyStats"`
	Achievements []string             `json:"achievements"`
	Level        int                  `json:"level"`
	Experience   int                  `json:"experience"`
	Streak       int                  `json:"streak"`
	Goals        GoalsResponse        `json:"goals"`
	Categories   CategoriesResponse   `json:"categories"`
	Settings     SettingsResponse     `json:"settings"`
}

type TrackingResponse struct {
	Mode          string     `json:"mode"`
	TabID         *int       `json:"tabId,omitempty"`
	Domain        string     `json:"domain,omitempty"`
	StartedAt     *time.Time `json:"startedAt,omitempty"`
	WindowFocused bool       `json:"windowFocused"`
}

func toDailyStats(d domain.DailyStats) DailyStatsResponse {
	out := DailyStatsResponse{
		Date:              d.Date,
		TotalTimeMs:       d.TotalTimeMs,
		ProductiveTimeMs:  d.ProductiveTimeMs,
		DistractingTimeMs: d.DistractingTimeMs,
		NeutralTimeMs:     d.NeutralTimeMs,
		Score:             d.Score,
		Sessions:          make([]SessionResponse, 0, len(d.Sessions)),
	}
	for _, s := range d.Sessions {
		out.Sessions = append(out.Sessions, SessionResponse{
			ID:         s.ID,
			Domain:     s.Domain,
			Category:   string(s.Category),
			DurationMs: s.DurationMs,
			Timestamp:  s.Timestamp,
		})
	}
	return out
}

func toWeekly(w domain.WeeklyStats) []DailyStatsResponse {
	out := make([]DailyStatsResponse, 0, len(w))
	for _, d := range w {
		out = append(out, toDailyStats(d))
	}
	return out
}

func toProgression(p domain.Progression) ProgressionResponse {
	current, needed := p.LevelProgress()
	return ProgressionResponse{
		Level:         p.Level,
		Experience:    p.Experience,
		Streak:        p.Streak,
		LevelProgress: current,
		LevelSize:     needed,
	}
}

func toAchievements(unlocked []string) AchievementsResponse {
	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}
	out := AchievementsResponse{
		Unlocked: nonNil(unlocked),
		Catalog:  make([]AchievementResponse, 0, len(domain.AchievementCatalog)),
	}
	for _, a := range domain.AchievementCatalog {
		out.Catalog = append(out.Catalog, AchievementResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Unlocked:    have[a.ID],
		})
	}
	return out
}

func toGoals(g domain.Goals) GoalsResponse {
	return GoalsResponse{
		DailyProductiveHours: g.DailyProductiveHours,
		MaxDistractingHours:  g.MaxDistractingHours,
		FocusSessionMinutes:  g.FocusSessionMinutes,
	}
}

func toCategories(c domain.CategoryConfig) CategoriesResponse {
	return CategoriesResponse{
		Productive:  nonNil(c.Productive),
		Distracting: nonNil(c.Distracting),
		Neutral:     nonNil(c.Neutral),
	}
}

func toSettings(s domain.Settings) SettingsResponse {
	return SettingsResponse{Theme: s.Theme, Notifications: s.Notifications, SoundEnabled: s.SoundEnabled}
}

func toGoalProgress(p scoring.GoalProgress) GoalProgressResponse {
	return GoalProgressResponse{
		ProductiveHours:     p.ProductiveHours,
		DistractingHours:    p.DistractingHours,
		DailyGoalPct:        p.DailyGoalPct,
		DistractingLimitPct: p.DistractingLimitPct,
		DailyGoalMet:        p.DailyGoalMet,
		DistractingExceeded: p.DistractingExceeded,
	}
}

func toSnapshot(s domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		DailyStats:   toDailyStats(s.Daily),
		WeeklyStats:  toWeekly(s.Weekly),
		Achievements: nonNil(s.Achievements),
		Level:        s.Progression.Level,
		Experience:   s.Progression.Experience,
		Streak:       s.Progression.Streak,
		Goals:        toGoals(s.Goals),
		Categories:   toCategories(s.Categories),
		Settings:     toSettings(s.Settings),
	}
}

func toTracking(s tracker.State) TrackingResponse {
	out := TrackingResponse{Mode: s.Mode.String(), WindowFocused: s.WindowFocused}
	if s.ActiveTab != nil {
		id := s.ActiveTab.ID
		out.TabID = &id
	}
	if s.Mode == tracker.Tracking {
		started := s.StartedAt
		out.Domain = s.Domain
		out.StartedAt = &started
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
