package domain

import "errors"

var (
	// ErrSlotClosed возвращается, когда слот закрыт администратором
	ErrSlotClosed = errors.New("domain: slot is closed")

	// ErrCapacityExceeded возвращается, когда в слоте не хватает мест
	ErrCapacityExceeded = errors.New("domain: slot capacity exceeded")

	// ErrInvalidTimeSlot возвращается для значения, отличного от morning/afternoon
	ErrInvalidTimeSlot = errors.New("domain: invalid time slot")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("domain: invalid date")

	// ErrInvalidMonth возвращается при некорректном месяце
	ErrInvalidMonth = errors.New("domain: invalid year-month")

	// ErrInvalidSlot возвращается, когда слот нарушает инварианты
	ErrInvalidSlot = errors.New("domain: invalid slot")

	// ErrInvalidParticipants возвращается при некорректном количестве участников
	ErrInvalidParticipants = errors.New("domain: invalid participants count")
)
