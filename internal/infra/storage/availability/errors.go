package availability

import "errors"

var (
	// ErrDayNotFound возвращается, когда день не найден
	ErrDayNotFound = errors.New("availability.repository: day not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("availability.repository: slot not found")

	// ErrDuplicateDay возвращается при нарушении уникальности (owner_id, date)
	ErrDuplicateDay = errors.New("availability.repository: day already exists for owner and date")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("availability.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
