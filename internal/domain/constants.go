package domain

// Business validation constants
const (
	MinDurationMinutes          = 1
	MaxDurationMinutes          = 480 // 8 hours
	FullDayBlockMinutes         = 720 // 09:00-21:00
	MaxBlockDays                = 7
	MaxNameLength               = 100
	MaxEmailLength              = 255
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	DefaultDailyClientLimit     = 3
)

// BlockPresetMinutes allowed durations for a "specific" time block
var BlockPresetMinutes = []int{15, 30, 45, 60, 90, 120, 150, 180}

// Display values stored on blocked rows
const (
	BlockedFirstName    = "Blocked"
	BlockedLastName     = "Time"
	BlockedServiceName  = "Blocked Time"
	BlockedNotesFullDay = "Full day blocked"
	BlockedNotesSpecial = "Time blocked by admin"
)

// FallbackAdminEmail используется, когда email админа недоступен
const FallbackAdminEmail = "admin@system.local"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// IsBlockPreset reports whether minutes is one of BlockPresetMinutes
func IsBlockPreset(minutes int) bool {
	for _, p := range BlockPresetMinutes {
		if p == minutes {
			return true
		}
	}
	return false
}
