package get_day_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

// UseCase use case выборки слотов одного дня
// Админы и сотрудники видят все слоты дня; клиенты - только незабронированные
// слоты, начинающиеся строго в будущем (через ViewerPolicy)
type UseCase struct {
	repo         AvailabilityRepository
	timeProvider TimeProvider
	logger       Logger

	defaultTimezone string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(repo AvailabilityRepository, defaultTimezone string, logger Logger) *UseCase {
	return &UseCase{
		repo:            repo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		defaultTimezone: defaultTimezone,
	}
}

// Execute выполняет use case выборки слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	timezone := req.Timezone
	if timezone == "" {
		timezone = uc.defaultTimezone
	}

	if req.OwnerID <= 0 {
		uc.logger.Warn("GetDaySlots: invalid owner id %d", req.OwnerID)
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	loc, err := timeparse.LoadLocation(timezone)
	if err != nil {
		uc.logger.Warn("GetDaySlots: unknown timezone %q", timezone)
		return nil, err
	}

	// Разрешаем селектор дня: либо дата, либо dayId
	slots, err := uc.resolveSlots(ctx, req, timezone)
	if err != nil {
		return nil, err
	}

	// Ролевая фильтрация: клиент видит только доступное для бронирования
	policy := domain.PolicyForRole(req.Role)
	now := uc.timeProvider.Now()
	visible := policy.VisibleSlots(slots, now)

	response := &Response{
		OwnerID:  req.OwnerID,
		Timezone: timezone,
		Slots:    make([]Slot, 0, len(visible)),
	}
	for _, slot := range visible {
		response.Slots = append(response.Slots, Slot{
			ID:          slot.ID,
			DayID:       slot.AvailableDayID,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsBooked:    slot.IsBooked,
			HasReminder: slot.MeetingReminderID != nil,
			LocalDate:   timeparse.LocalDay(slot.StartTime, loc),
		})
	}

	uc.logger.Info("GetDaySlots: owner=%d, role=%s, returned %d of %d slots",
		req.OwnerID, req.Role, len(visible), len(slots))

	return response, nil
}

// resolveSlots загружает слоты дня по селектору
func (uc *UseCase) resolveSlots(ctx context.Context, req *Request, timezone string) ([]*domain.AvailableSlot, error) {
	if dayID, ok := req.Selector.ByID(); ok {
		day, err := uc.repo.GetDayByID(ctx, dayID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrDayNotFound) {
				uc.logger.Warn("GetDaySlots: day id=%d not found", dayID)
				return nil, ErrDayNotFound
			}
			return nil, fmt.Errorf("%w: failed to get day: %v", ErrInternal, err)
		}

		// Чужой день не раскрываем: для вызывающего он не существует
		if day.OwnerID != req.OwnerID {
			uc.logger.Warn("GetDaySlots: day id=%d belongs to owner=%d, requested by owner=%d",
				dayID, day.OwnerID, req.OwnerID)
			return nil, ErrDayNotFound
		}

		slots, err := uc.repo.GetSlotsByDayID(ctx, day.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get day slots: %v", ErrInternal, err)
		}
		return slots, nil
	}

	if rawDate, ok := req.Selector.ByDate(); ok {
		date, err := timeparse.NormalizeDate(rawDate)
		if err != nil {
			uc.logger.Warn("GetDaySlots: invalid date %q: %v", rawDate, err)
			return nil, err
		}

		// Окно дня: [локальная полночь, полночь + 24ч) в UTC
		from, err := timeparse.LocalMidnight(date, timezone)
		if err != nil {
			return nil, err
		}
		to := from.Add(24 * time.Hour)

		slots, err := uc.repo.GetSlotsInRange(ctx, req.OwnerID, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get slots in range: %v", ErrInternal, err)
		}
		return slots, nil
	}

	// Пустой селектор: не указана ни дата, ни dayId
	uc.logger.Warn("GetDaySlots: missing day selector for owner=%d", req.OwnerID)
	return nil, domain.ErrMissingDaySelector
}
