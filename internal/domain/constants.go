package domain

import "github.com/m04kA/SMC-StudioScheduler/pkg/types"

// Default scheduling values
const (
	DefaultGranularityMinutes = 30
	DefaultWindowStart        = types.TimeString("09:00")
	DefaultWindowEnd          = types.TimeString("17:00")
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 720
	MaxAddressLength          = 500
	MaxBlockReasonLength      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
