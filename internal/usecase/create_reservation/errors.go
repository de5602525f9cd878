package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidDate возвращается, когда дата посещения уже прошла
	ErrInvalidDate = errors.New("create_reservation: date is in the past")

	// ErrSlotClosed возвращается, когда слот закрыт или отсутствует
	ErrSlotClosed = errors.New("create_reservation: slot is closed")

	// ErrCapacityExceeded возвращается, когда в слоте не хватает мест
	ErrCapacityExceeded = errors.New("create_reservation: not enough places")

	// ErrDailyLimitReached возвращается, когда исчерпаны номера бронирований за день
	ErrDailyLimitReached = errors.New("create_reservation: daily reservation limit reached")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
