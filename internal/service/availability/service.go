package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

// Service сервис удаления дней и слотов календаря
// Забронированное состояние необратимо: день с забронированным слотом и сам
// забронированный слот удалить нельзя, отказ оставляет состояние нетронутым
type Service struct {
	repo         AvailabilityRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	cache     CacheInvalidator
	publisher EventPublisher
}

// NewService создает новый экземпляр сервиса
func NewService(repo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:         repo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetCache подключает инвалидацию кэша календарной сетки (опционально)
func (s *Service) SetCache(cache CacheInvalidator) {
	s.cache = cache
}

// SetPublisher подключает публикацию событий календаря (опционально)
func (s *Service) SetPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// DeleteDay удаляет день вместе со всеми его слотами
// Отклоняется с ErrDayHasBookedSlots, если хоть один слот забронирован;
// проверка и удаление выполняются в одной сериализуемой транзакции
func (s *Service) DeleteDay(ctx context.Context, dayID int64) error {
	s.logger.Info("DeleteDay: deleting day id=%d", dayID)

	var (
		ownerID   int64
		localDate string
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, err := s.repo.GetDayByID(txCtx, dayID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrDayNotFound) {
				s.logger.Warn("DeleteDay: day id=%d not found", dayID)
				return ErrDayNotFound
			}
			return fmt.Errorf("%w: DeleteDay - repository error: %v", ErrInternal, err)
		}
		ownerID = day.OwnerID
		localDate = day.Date.UTC().Format(timeparse.DateFormat)

		booked, err := s.repo.CountBookedSlots(txCtx, dayID)
		if err != nil {
			return fmt.Errorf("%w: DeleteDay - failed to count booked slots: %v", ErrInternal, err)
		}
		if booked > 0 {
			s.logger.Warn("DeleteDay: day id=%d has %d booked slots, deletion rejected", dayID, booked)
			return ErrDayHasBookedSlots
		}

		// Сначала слоты, затем сам день
		if err := s.repo.DeleteSlotsByDayID(txCtx, dayID); err != nil {
			return fmt.Errorf("%w: DeleteDay - failed to delete slots: %v", ErrInternal, err)
		}
		if err := s.repo.DeleteDay(txCtx, dayID); err != nil {
			return fmt.Errorf("%w: DeleteDay - failed to delete day: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("DeleteDay: successfully deleted day id=%d", dayID)

	s.invalidateCache(ctx, ownerID)
	s.publishEvent(ctx, events.KeyDayDeleted, events.DayEvent{
		OwnerID: ownerID,
		DayID:   dayID,
		Date:    localDate,
		At:      s.timeProvider.Now(),
	})

	return nil
}

// DeleteSlot удаляет один незабронированный слот
// День остается, даже если слотов в нём больше нет
func (s *Service) DeleteSlot(ctx context.Context, slotID int64) error {
	s.logger.Info("DeleteSlot: deleting slot id=%d", slotID)

	var event events.SlotEvent

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.repo.GetSlotByID(txCtx, slotID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
				s.logger.Warn("DeleteSlot: slot id=%d not found", slotID)
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
		}

		if !slot.CanBeDeleted() {
			s.logger.Warn("DeleteSlot: slot id=%d is booked, deletion rejected", slotID)
			return ErrSlotIsBooked
		}

		day, err := s.repo.GetDayByID(txCtx, slot.AvailableDayID)
		if err != nil {
			return fmt.Errorf("%w: DeleteSlot - failed to get owning day: %v", ErrInternal, err)
		}

		if err := s.repo.DeleteSlot(txCtx, slotID); err != nil {
			return fmt.Errorf("%w: DeleteSlot - failed to delete slot: %v", ErrInternal, err)
		}

		event = events.SlotEvent{
			OwnerID:   day.OwnerID,
			DayID:     day.ID,
			SlotID:    slotID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("DeleteSlot: successfully deleted slot id=%d", slotID)

	s.invalidateCache(ctx, event.OwnerID)
	event.At = s.timeProvider.Now()
	s.publishEvent(ctx, events.KeySlotDeleted, event)

	return nil
}

// invalidateCache сбрасывает кэш сетки владельца; ошибка кэша не ломает запрос
func (s *Service) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOwner(ctx, ownerID); err != nil {
		s.logger.Warn("availability: cache invalidation failed for owner=%d: %v", ownerID, err)
	}
}

// publishEvent публикует событие календаря (best-effort)
func (s *Service) publishEvent(ctx context.Context, key string, v interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, key, v); err != nil {
		s.logger.Warn("availability: failed to publish %s: %v", key, err)
	}
}
