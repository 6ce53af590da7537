package loop

import "time"

// Session tuning. Gameplay parameters live in config.Settings.

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal render area
const (
	MaxTermWidth  = 240 // Columns
	MaxTermHeight = 80  // Rows
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Scoreboard
const (
	TitleScoreRows = 5 // Entries shown on the title screen
)
