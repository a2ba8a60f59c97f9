package add_custom_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

// UseCase use case ручного добавления слота в существующий день
// Кандидат проверяется на пересечение со всеми слотами дня внутри
// сериализуемой транзакции: при конфликте запись не выполняется
type UseCase struct {
	repo         AvailabilityRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	defaultTimezone string

	cache     CacheInvalidator
	publisher EventPublisher
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo AvailabilityRepository,
	txManager TransactionManager,
	defaultTimezone string,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:            repo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		defaultTimezone: defaultTimezone,
	}
}

// SetCache подключает инвалидацию кэша календарной сетки (опционально)
func (uc *UseCase) SetCache(cache CacheInvalidator) {
	uc.cache = cache
}

// SetPublisher подключает публикацию событий календаря (опционально)
func (uc *UseCase) SetPublisher(publisher EventPublisher) {
	uc.publisher = publisher
}

// Execute выполняет use case добавления слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	timezone := req.Timezone
	if timezone == "" {
		timezone = uc.defaultTimezone
	}

	uc.logger.Info("AddCustomSlot: day=%d, window=%s-%s, tz=%s",
		req.DayID, req.FromTime, req.ToTime, timezone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AddCustomSlot: validation failed: %v", err)
		return nil, err
	}

	loc, err := timeparse.LoadLocation(timezone)
	if err != nil {
		uc.logger.Warn("AddCustomSlot: unknown timezone %q", timezone)
		return nil, err
	}

	var (
		response *Response
		ownerID  int64
	)

	// 2. Проверка конфликта и вставка - одна сериализуемая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем день (с блокировкой строки)
		day, err := uc.repo.GetDayByID(txCtx, req.DayID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrDayNotFound) {
				uc.logger.Warn("AddCustomSlot: day id=%d not found", req.DayID)
				return ErrDayNotFound
			}
			return fmt.Errorf("%w: failed to get day: %v", ErrInternal, err)
		}
		ownerID = day.OwnerID

		// 2.2. Кандидат строится от ЛОКАЛЬНОЙ даты дня, а не от UTC-представления
		localDate := timeparse.LocalDay(day.Date, loc)

		start, err := timeparse.ToUTC(localDate, req.FromTime, timezone)
		if err != nil {
			return err
		}
		end, err := timeparse.ToUTC(localDate, req.ToTime, timezone)
		if err != nil {
			return err
		}
		if !end.After(start) {
			return fmt.Errorf("%w: slot end must be after start", ErrInvalidInput)
		}

		// 2.3. Проверяем пересечение со всеми слотами дня
		existing, err := uc.repo.GetSlotsByDayID(txCtx, day.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to get day slots: %v", ErrInternal, err)
		}
		if err := checkConflict(existing, start, end); err != nil {
			uc.logger.Warn("AddCustomSlot: conflict on day id=%d: %v", day.ID, err)
			return err
		}

		// 2.4. Вставляем новый незабронированный слот
		slot, err := uc.repo.InsertSlot(txCtx, &domain.AvailableSlot{
			AvailableDayID: day.ID,
			StartTime:      start,
			EndTime:        end,
			IsBooked:       false,
			UserTimezone:   timezone,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to insert slot: %v", ErrInternal, err)
		}

		response = &Response{
			SlotID:    slot.ID,
			DayID:     day.ID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			LocalDate: localDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AddCustomSlot: created slot id=%d on day=%d", response.SlotID, response.DayID)

	// 3. Инвалидация кэша и событие - после фиксации транзакции, best-effort
	if uc.cache != nil {
		if err := uc.cache.InvalidateOwner(ctx, ownerID); err != nil {
			uc.logger.Warn("AddCustomSlot: cache invalidation failed for owner=%d: %v", ownerID, err)
		}
	}
	if uc.publisher != nil {
		event := events.SlotEvent{
			OwnerID:   ownerID,
			DayID:     response.DayID,
			SlotID:    response.SlotID,
			StartTime: response.StartTime,
			EndTime:   response.EndTime,
			At:        uc.timeProvider.Now(),
		}
		if err := uc.publisher.PublishJSON(ctx, events.KeySlotCreated, event); err != nil {
			uc.logger.Warn("AddCustomSlot: failed to publish event for slot=%d: %v", response.SlotID, err)
		}
	}

	return response, nil
}
