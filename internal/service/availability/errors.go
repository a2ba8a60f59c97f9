package availability

import "errors"

var (
	// ErrDayNotFound возвращается, когда день не найден
	ErrDayNotFound = errors.New("day not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrDayHasBookedSlots возвращается при попытке удалить день
	// с забронированными слотами
	ErrDayHasBookedSlots = errors.New("day has booked slots and cannot be deleted")

	// ErrSlotIsBooked возвращается при попытке удалить забронированный слот
	ErrSlotIsBooked = errors.New("slot is booked and cannot be deleted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
