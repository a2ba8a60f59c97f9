package domain

import "time"

// CallerRole роль вызывающей стороны
type CallerRole string

const (
	RoleAdmin  CallerRole = "admin"
	RoleStaff  CallerRole = "staff"
	RoleClient CallerRole = "client"
)

// ParseCallerRole разбирает роль из строки; пустая строка и неизвестные
// значения трактуются как клиент (наименее привилегированная роль)
func ParseCallerRole(s string) CallerRole {
	switch CallerRole(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleStaff:
		return RoleStaff
	default:
		return RoleClient
	}
}

// ViewerPolicy определяет, какие слоты видит вызывающая сторона и как
// классифицируется полностью занятый день
// Ролевые ветвления собраны здесь, а не размазаны по usecase-ам
type ViewerPolicy interface {
	// VisibleSlots фильтрует слоты, видимые данной роли
	VisibleSlots(slots []*AvailableSlot, now time.Time) []*AvailableSlot

	// IsFullyBooked классифицирует день по агрегированным данным видимых слотов
	IsFullyBooked(meta DayAvailability) bool
}

// PolicyForRole возвращает политику просмотра для роли
// Админы и сотрудники видят всё, клиенты - только доступное для бронирования
func PolicyForRole(role CallerRole) ViewerPolicy {
	if role == RoleClient {
		return ClientPolicy{}
	}
	return AdminPolicy{}
}

// AdminPolicy политика для админов и сотрудников: видны все слоты
type AdminPolicy struct{}

// VisibleSlots возвращает все слоты без фильтрации
func (AdminPolicy) VisibleSlots(slots []*AvailableSlot, _ time.Time) []*AvailableSlot {
	return slots
}

// IsFullyBooked день полностью занят, если в нём есть слоты, каждый из них
// забронирован И связан с напоминанием, и не осталось ни одного свободного.
// Забронированный слот без напоминания день полностью занятым НЕ делает
func (AdminPolicy) IsFullyBooked(meta DayAvailability) bool {
	return meta.TotalSlots > 0 &&
		meta.BookedWithReminder == meta.TotalSlots &&
		!meta.HasUnbooked
}

// ClientPolicy политика для клиентов: видны только незабронированные слоты,
// начинающиеся строго в будущем
type ClientPolicy struct{}

// VisibleSlots оставляет только слоты, доступные для бронирования сейчас
func (ClientPolicy) VisibleSlots(slots []*AvailableSlot, now time.Time) []*AvailableSlot {
	visible := make([]*AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsBookable(now) {
			visible = append(visible, slot)
		}
	}
	return visible
}

// IsFullyBooked для клиента агрегация идёт по уже отфильтрованным слотам,
// поэтому формула та же: занятые слоты в meta клиента просто не попадают
func (ClientPolicy) IsFullyBooked(meta DayAvailability) bool {
	return meta.TotalSlots > 0 &&
		meta.BookedWithReminder == meta.TotalSlots &&
		!meta.HasUnbooked
}
