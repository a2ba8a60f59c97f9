package events

import "time"

// Routing keys публикуемых событий календаря
const (
	KeyDayCreated     = "availability.day.created"
	KeyDayRegenerated = "availability.day.regenerated"
	KeyDayDeleted     = "availability.day.deleted"
	KeySlotCreated    = "availability.slot.created"
	KeySlotDeleted    = "availability.slot.deleted"
)

// DayEvent событие изменения дня доступности
// Потребители: сервис бронирований и сервис уведомлений
type DayEvent struct {
	OwnerID   int64     `json:"ownerId"`
	DayID     int64     `json:"dayId"`
	Date      string    `json:"date"` // Локальная дата дня (YYYY-MM-DD)
	SlotCount int       `json:"slotCount"`
	Timezone  string    `json:"timezone"`
	At        time.Time `json:"at"`
}

// SlotEvent событие изменения отдельного слота
type SlotEvent struct {
	OwnerID   int64     `json:"ownerId"`
	DayID     int64     `json:"dayId"`
	SlotID    int64     `json:"slotId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	At        time.Time `json:"at"`
}
