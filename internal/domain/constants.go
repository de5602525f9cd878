package domain

// Значения по умолчанию для календаря доступности
const (
	DefaultSlotCapacity    = 99999 // фактически без ограничения
	DefaultSeedDays        = 365
	DefaultMaxParticipants = 100
)

// Ограничения полей бронирования
const (
	MaxOrganizationNameLength = 100
	MaxContactNameLength      = 50
	MaxPhoneLength            = 20
	MaxNotesLength            = 500
)

// Форматы дат
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// ReservationIDPrefix префикс идентификатора бронирования (AR-YYMMDD-NNNN)
const ReservationIDPrefix = "AR"

// MaxDailySequence максимальный порядковый номер бронирования за день
const MaxDailySequence = 9999
