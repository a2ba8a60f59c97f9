package create_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория календаря доступности
type AvailabilityRepository interface {
	CreateDay(ctx context.Context, day *domain.AvailableDay) (*domain.AvailableDay, error)
	GetDayByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) (*domain.AvailableDay, error)
	CountBookedSlots(ctx context.Context, dayID int64) (int, error)
	DeleteSlotsByDayID(ctx context.Context, dayID int64) error
	DeleteDay(ctx context.Context, dayID int64) error
	InsertSlots(ctx context.Context, slots []*domain.AvailableSlot) error
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
