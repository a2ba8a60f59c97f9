package add_custom_slot

import "time"

// Request модель запроса на ручное добавление слота в существующий день
type Request struct {
	DayID    int64  // ID дня, в который добавляется слот
	FromTime string // Начало слота (HH:MM, локальное время)
	ToTime   string // Конец слота (HH:MM, локальное время)
	Timezone string // IANA-таймзона; пустая - дефолт сервиса
}

// Response модель ответа с созданным слотом
type Response struct {
	SlotID    int64
	DayID     int64
	StartTime time.Time // UTC
	EndTime   time.Time // UTC
	LocalDate string    // Локальная дата дня (YYYY-MM-DD)
}
