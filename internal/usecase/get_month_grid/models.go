package get_month_grid

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса календарной сетки месяца
type Request struct {
	OwnerID  int64             // ID владельца календаря
	Year     int               // Год запрошенного месяца
	Month    time.Month        // Запрошенный месяц
	Role     domain.CallerRole // Роль вызывающей стороны
	Timezone string            // IANA-таймзона; пустая - дефолт сервиса
}

// Cell одна ячейка сетки
// JSON-теги нужны для кэширования готового ответа целиком
type Cell struct {
	Date           string `json:"date"`           // Локальная дата (YYYY-MM-DD)
	DayOfMonth     int    `json:"dayOfMonth"`     // Число месяца
	IsCurrentMonth bool   `json:"isCurrentMonth"` // Принадлежит ли запрошенному месяцу
	IsPast         bool   `json:"isPast"`         // Строго раньше сегодняшнего локального дня
	HasAvailable   bool   `json:"hasAvailable"`   // Есть ли незабронированный слот
	IsFullyBooked  bool   `json:"isFullyBooked"`  // Полностью ли занят день
	TotalSlots     int    `json:"totalSlots"`     // Число слотов дня (после ролевой фильтрации)
}

// Response модель ответа: полные недели (воскресенье-суббота),
// покрывающие запрошенный месяц
type Response struct {
	OwnerID  int64  `json:"ownerId"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Timezone string `json:"timezone"`
	Cells    []Cell `json:"cells"`
}
