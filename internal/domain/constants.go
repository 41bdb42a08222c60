package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultTimezone            = "Asia/Seoul"
)

// Business validation constants
const (
	MinSlotDurationMinutes    = 5
	MaxSlotDurationMinutes    = 240
	MaxParticipantNamesLength = 255
)

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04:05" // формат поля start в запросе бронирования
)
