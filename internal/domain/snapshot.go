package domain

// Snapshot is a read-only view of every persisted key.
type Snapshot struct {
	Daily        DailyStats
	Weekly       WeeklyStats
	Achievements []string
	Progression  Progression
	Goals        Goals
	Categories   CategoryConfig
	Settings     Settings
}
