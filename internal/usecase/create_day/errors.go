package create_day

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDayHasBookedSlots возвращается при попытке пересоздать день,
	// в котором есть хотя бы один забронированный слот
	ErrDayHasBookedSlots = errors.New("day has booked slots and cannot be regenerated")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
