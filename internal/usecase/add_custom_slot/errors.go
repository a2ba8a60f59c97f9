package add_custom_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDayNotFound возвращается, когда день не найден
	ErrDayNotFound = errors.New("day not found")

	// ErrSlotOverlap возвращается, когда новый слот пересекается с существующим
	ErrSlotOverlap = errors.New("slot overlaps an existing slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
