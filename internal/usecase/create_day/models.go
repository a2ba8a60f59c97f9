package create_day

// Request модель запроса на создание (или пересоздание) дней доступности
// Одна дата - createDay/regenerateDay, несколько дат - createMultipleDays
type Request struct {
	OwnerID              int64    // ID владельца календаря
	Dates                []string // Локальные даты (YYYY-MM-DD или DD/MM/YYYY)
	FromTime             string   // Начало рабочего окна (HH:MM, локальное время)
	ToTime               string   // Конец рабочего окна (HH:MM, локальное время)
	SlotDurationMinutes  int      // Длительность слота в минутах
	BreakDurationMinutes int      // Перерыв между слотами в минутах
	Timezone             string   // IANA-таймзона; пустая - дефолт сервиса
}

// DayResult результат обработки одной даты
// Для пакетного запроса каждая дата независима: ошибка одной даты
// не откатывает уже созданные дни
type DayResult struct {
	Date         string // Нормализованная локальная дата
	DayID        int64  // ID созданного дня (0 при ошибке)
	SlotsCreated int    // Количество созданных слотов
	Regenerated  bool   // Был ли день пересоздан (существовал ранее)
	Error        string // Текст ошибки для этой даты (пусто при успехе)
}

// Response модель ответа
type Response struct {
	OwnerID  int64
	Timezone string
	Results  []DayResult
}
