package domain

import "time"

// AvailableDay represents one calendar day of an owner's working hours
// Поле Date хранит локальную полночь дня, сконвертированную в UTC.
// Пара (OwnerID, Date) - естественный ключ дня, ID - суррогатный
type AvailableDay struct {
	ID        int64
	OwnerID   int64
	Date      time.Time
	CreatedAt time.Time
}

// HasBookedSlot returns true if any slot of the day is booked
func HasBookedSlot(slots []*AvailableSlot) bool {
	for _, slot := range slots {
		if slot.IsBooked {
			return true
		}
	}
	return false
}
