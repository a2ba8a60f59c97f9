package domain

import "time"

// AvailableSlot represents a bookable time slot within an available day
// StartTime/EndTime хранятся как UTC-моменты; UserTimezone - таймзона,
// в которой слот был сгенерирован (сохраняется для корректного отображения)
type AvailableSlot struct {
	ID                int64
	AvailableDayID    int64
	StartTime         time.Time
	EndTime           time.Time
	IsBooked          bool
	MeetingReminderID *int64
	UserTimezone      string
	CreatedAt         time.Time
}

// IsBookedWithReminder returns true if the slot is booked and linked to a reminder
func (s *AvailableSlot) IsBookedWithReminder() bool {
	return s.IsBooked && s.MeetingReminderID != nil
}

// IsBookable returns true if the slot can still be booked at the given moment
// Слот доступен для бронирования, если он не занят и начинается строго в будущем
func (s *AvailableSlot) IsBookable(now time.Time) bool {
	return !s.IsBooked && s.StartTime.After(now)
}

// CanBeDeleted returns true if the slot may be removed
// Забронированный слот удалять нельзя
func (s *AvailableSlot) CanBeDeleted() bool {
	return !s.IsBooked
}

// Overlaps проверяет пересечение интервалов [s.StartTime, s.EndTime) и [start, end)
// Интервалы пересекаются, только если начало одного СТРОГО раньше конца другого
// в обе стороны; граничащие интервалы (конец одного == начало другого) не пересекаются
func (s *AvailableSlot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}
