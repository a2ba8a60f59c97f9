package get_day_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория календаря доступности
type AvailabilityRepository interface {
	GetDayByID(ctx context.Context, id int64) (*domain.AvailableDay, error)
	GetSlotsByDayID(ctx context.Context, dayID int64) ([]*domain.AvailableSlot, error)
	GetSlotsInRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.AvailableSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
