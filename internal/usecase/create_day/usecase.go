package create_day

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/slotgen"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

// UseCase use case создания и пересоздания дней доступности
// Пересоздание (regenerate) - это тот же вход: если день уже существует и в нём
// нет забронированных слотов, он целиком удаляется и создается заново
type UseCase struct {
	repo         AvailabilityRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	defaultTimezone     string
	defaultSlotDuration int

	cache     CacheInvalidator
	publisher EventPublisher
}

// NewUseCase создает новый экземпляр use case
// defaultTimezone - явная операционная таймзона из конфигурации: применяется,
// когда вызывающая сторона таймзону не передала.
// defaultSlotDuration - длительность слота в минутах при нулевой в запросе
func NewUseCase(
	repo AvailabilityRepository,
	txManager TransactionManager,
	defaultTimezone string,
	defaultSlotDuration int,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:                repo,
		txManager:           txManager,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		defaultTimezone:     defaultTimezone,
		defaultSlotDuration: defaultSlotDuration,
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

// Execute выполняет use case создания дней доступности
// Каждая дата обрабатывается в собственной сериализуемой транзакции:
// ошибка одной даты не откатывает остальные (best-effort пакет).
// Для запроса с одной датой ошибка возвращается напрямую, чтобы
// вызывающая сторона могла различить её вид
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	timezone := req.Timezone
	if timezone == "" {
		timezone = uc.defaultTimezone
	}

	// Нулевая длительность означает "не задана", отрицательную отсечёт валидация
	if req.SlotDurationMinutes == 0 {
		req.SlotDurationMinutes = uc.defaultSlotDuration
	}

	uc.logger.Info("CreateDay: owner=%d, dates=%d, window=%s-%s, duration=%d, break=%d, tz=%s",
		req.OwnerID, len(req.Dates), req.FromTime, req.ToTime,
		req.SlotDurationMinutes, req.BreakDurationMinutes, timezone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateDay: validation failed: %v", err)
		return nil, err
	}

	// 2. Таймзона должна существовать до начала записи
	if _, err := timeparse.LoadLocation(timezone); err != nil {
		uc.logger.Warn("CreateDay: unknown timezone %q", timezone)
		return nil, err
	}

	// 3. Обрабатываем каждую дату независимо
	results := make([]DayResult, 0, len(req.Dates))
	for _, rawDate := range req.Dates {
		result, err := uc.executeOne(ctx, req, rawDate, timezone)
		if err != nil {
			// Одна дата - пробрасываем ошибку как есть (createDay/regenerateDay)
			if len(req.Dates) == 1 {
				return nil, err
			}
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	// 4. Инвалидируем кэш сетки владельца (best-effort)
	uc.invalidateCache(ctx, req.OwnerID)

	uc.logger.Info("CreateDay: owner=%d, processed %d dates", req.OwnerID, len(results))

	return &Response{
		OwnerID:  req.OwnerID,
		Timezone: timezone,
		Results:  results,
	}, nil
}

// executeOne создает (или пересоздает) один день в сериализуемой транзакции
func (uc *UseCase) executeOne(ctx context.Context, req *Request, rawDate, timezone string) (DayResult, error) {
	// Нормализуем дату до каноничного YYYY-MM-DD
	date, err := timeparse.NormalizeDate(rawDate)
	if err != nil {
		uc.logger.Warn("CreateDay: invalid date %q: %v", rawDate, err)
		return DayResult{Date: rawDate}, err
	}

	// Локальная полночь дня, сохраняемая как UTC - естественный ключ дня
	midnight, err := timeparse.LocalMidnight(date, timezone)
	if err != nil {
		uc.logger.Warn("CreateDay: failed to resolve midnight for %s in %s: %v", date, timezone, err)
		return DayResult{Date: date}, err
	}

	// Слоты генерируются до транзакции: результат детерминирован
	intervals, err := slotgen.Generate(date, req.FromTime, req.ToTime,
		req.SlotDurationMinutes, req.BreakDurationMinutes, timezone)
	if err != nil {
		uc.logger.Warn("CreateDay: slot generation failed for %s: %v", date, err)
		return DayResult{Date: date}, err
	}

	result := DayResult{Date: date}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Ищем существующий день по естественному ключу (с блокировкой строки)
		existing, err := uc.repo.GetDayByOwnerAndDate(txCtx, req.OwnerID, midnight)
		if err != nil && !errors.Is(err, availabilityRepo.ErrDayNotFound) {
			return fmt.Errorf("%w: failed to get existing day: %v", ErrInternal, err)
		}

		// 2. Пересоздание: день существует - удаляем целиком, если ничего не забронировано
		if existing != nil {
			booked, err := uc.repo.CountBookedSlots(txCtx, existing.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to count booked slots: %v", ErrInternal, err)
			}
			if booked > 0 {
				uc.logger.Warn("CreateDay: day id=%d has %d booked slots, regeneration rejected",
					existing.ID, booked)
				return ErrDayHasBookedSlots
			}

			if err := uc.repo.DeleteSlotsByDayID(txCtx, existing.ID); err != nil {
				return fmt.Errorf("%w: failed to delete old slots: %v", ErrInternal, err)
			}
			if err := uc.repo.DeleteDay(txCtx, existing.ID); err != nil {
				return fmt.Errorf("%w: failed to delete old day: %v", ErrInternal, err)
			}

			result.Regenerated = true
		}

		// 3. Создаем день и слоты одним атомарным действием
		day, err := uc.repo.CreateDay(txCtx, &domain.AvailableDay{
			OwnerID: req.OwnerID,
			Date:    midnight,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create day: %v", ErrInternal, err)
		}

		slots := make([]*domain.AvailableSlot, 0, len(intervals))
		for _, interval := range intervals {
			slots = append(slots, &domain.AvailableSlot{
				AvailableDayID: day.ID,
				StartTime:      interval.StartUTC,
				EndTime:        interval.EndUTC,
				IsBooked:       false,
				UserTimezone:   timezone,
			})
		}

		if err := uc.repo.InsertSlots(txCtx, slots); err != nil {
			return fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
		}

		result.DayID = day.ID
		result.SlotsCreated = len(slots)
		return nil
	})
	if err != nil {
		return result, err
	}

	uc.logger.Info("CreateDay: owner=%d, date=%s, day=%d, slots=%d, regenerated=%t",
		req.OwnerID, date, result.DayID, result.SlotsCreated, result.Regenerated)

	uc.publishDayEvent(ctx, req.OwnerID, result, timezone)

	return result, nil
}

// invalidateCache сбрасывает кэш сетки владельца; ошибка кэша не ломает запрос
func (uc *UseCase) invalidateCache(ctx context.Context, ownerID int64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateOwner(ctx, ownerID); err != nil {
		uc.logger.Warn("CreateDay: cache invalidation failed for owner=%d: %v", ownerID, err)
	}
}

// publishDayEvent публикует событие создания/пересоздания дня (best-effort)
func (uc *UseCase) publishDayEvent(ctx context.Context, ownerID int64, result DayResult, timezone string) {
	if uc.publisher == nil {
		return
	}

	key := events.KeyDayCreated
	if result.Regenerated {
		key = events.KeyDayRegenerated
	}

	event := events.DayEvent{
		OwnerID:   ownerID,
		DayID:     result.DayID,
		Date:      result.Date,
		SlotCount: result.SlotsCreated,
		Timezone:  timezone,
		At:        uc.timeProvider.Now(),
	}

	if err := uc.publisher.PublishJSON(ctx, key, event); err != nil {
		uc.logger.Warn("CreateDay: failed to publish %s for day=%d: %v", key, result.DayID, err)
	}
}
