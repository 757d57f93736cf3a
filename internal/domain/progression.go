package domain

const (
	ExperiencePerAchievement = 100
	ExperiencePerLevel       = 1000
)

// Progression is the gamification state. Level is always derived from
// Experience; Streak is stored but maintained outside the tracking core.
type Progression struct {
	Level      int
	Experience int
	Streak     int
}

func DefaultProgression() Progression {
	return Progression{Level: 1}
}

// LevelFor returns the level reached with the given experience.
func LevelFor(experience int) int {
	if experience < 0 {
		experience = 0
	}
	return experience/ExperiencePerLevel + 1
}

// Grant adds experience and recomputes the level.
func (p *Progression) Grant(xp int) {
	p.Experience += xp
	p.Level = LevelFor(p.Experience)
}

// LevelProgress returns experience earned within the current level and the
// amount needed to complete it.
func (p Progression) LevelProgress() (current, needed int) {
	return p.Experience % ExperiencePerLevel, ExperiencePerLevel
}
