package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes  = 60
	DefaultBreakDurationMinutes = 0
)

// Business validation constants
const (
	MinSlotDurationMinutes  = 5
	MaxSlotDurationMinutes  = 480 // 8 hours
	MinBreakDurationMinutes = 0
	MaxBreakDurationMinutes = 240 // 4 hours
	MaxBatchDates           = 62  // два месяца за один запрос
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DaysPerWeek размер строки календарной сетки (неделя с воскресенья по субботу)
const DaysPerWeek = 7
