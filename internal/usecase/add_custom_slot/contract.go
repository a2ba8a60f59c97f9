package add_custom_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория календаря доступности
type AvailabilityRepository interface {
	GetDayByID(ctx context.Context, id int64) (*domain.AvailableDay, error)
	GetSlotsByDayID(ctx context.Context, dayID int64) ([]*domain.AvailableSlot, error)
	InsertSlot(ctx context.Context, slot *domain.AvailableSlot) (*domain.AvailableSlot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator интерфейс инвалидации кэша календарной сетки
type CacheInvalidator interface {
	InvalidateOwner(ctx context.Context, ownerID int64) error
}

// EventPublisher интерфейс публикации событий календаря
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
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
