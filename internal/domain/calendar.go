package domain

// DayAvailability агрегированные данные о доступности одного локального дня
// Накапливаются по слотам, принадлежащим этому дню в таймзоне запроса
type DayAvailability struct {
	TotalSlots         int  // Общее число слотов (с учётом фильтрации по роли)
	BookedWithReminder int  // Слоты, забронированные и связанные с напоминанием
	HasUnbooked        bool // Есть ли хотя бы один незабронированный слот
}

// DayCell одна ячейка календарной сетки месяца
type DayCell struct {
	Date           string // Локальная дата ячейки (YYYY-MM-DD)
	DayOfMonth     int    // Число месяца для отображения
	IsCurrentMonth bool   // Принадлежит ли ячейка запрошенному месяцу
	IsPast         bool   // Строго раньше сегодняшнего дня в таймзоне запроса
	HasAvailable   bool   // Есть ли доступный для бронирования слот
	IsFullyBooked  bool   // Полностью ли занят день
	TotalSlots     int    // Общее число слотов дня
}
