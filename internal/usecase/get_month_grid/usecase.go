package get_month_grid

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	calendarCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/calendar"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

// UseCase use case построения календарной сетки месяца
// Сетка - прямоугольник полных недель, каждая ячейка аннотирована
// агрегированной доступностью соответствующего ЛОКАЛЬНОГО дня
type UseCase struct {
	repo         AvailabilityRepository
	timeProvider TimeProvider
	logger       Logger

	defaultTimezone string

	cache GridCache
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

// SetCache подключает кэш готовых сеток (опционально)
func (uc *UseCase) SetCache(cache GridCache) {
	uc.cache = cache
}

// Execute выполняет use case построения сетки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	timezone := req.Timezone
	if timezone == "" {
		timezone = uc.defaultTimezone
	}

	// 1. Валидация входных данных
	if req.OwnerID <= 0 {
		uc.logger.Warn("GetMonthGrid: invalid owner id %d", req.OwnerID)
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.Month < time.January || req.Month > time.December {
		uc.logger.Warn("GetMonthGrid: invalid month %d", req.Month)
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	if req.Year < 1970 || req.Year > 9999 {
		return nil, fmt.Errorf("%w: year %d is out of range", ErrInvalidInput, req.Year)
	}

	loc, err := timeparse.LoadLocation(timezone)
	if err != nil {
		uc.logger.Warn("GetMonthGrid: unknown timezone %q", timezone)
		return nil, err
	}

	// 2. Пробуем кэш: сетка дорогая, а читается намного чаще, чем меняется
	cacheKey := calendarCache.GridKey(req.OwnerID, req.Year, req.Month, timezone, string(req.Role))
	if uc.cache != nil {
		var cached Response
		hit, err := uc.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("GetMonthGrid: cache get failed: %v", err)
		} else if hit {
			uc.logger.Info("GetMonthGrid: cache hit for %s", cacheKey)
			return &cached, nil
		}
	}

	// 3. Границы месяца и сетки в локальной таймзоне
	monthStart, monthEnd := monthBounds(req.Year, req.Month, loc)
	gridStart, gridEnd := gridBounds(monthStart, monthEnd)

	// 4. Все слоты владельца в UTC-окне сетки
	// Верхняя граница - конец последнего дня сетки (следующая локальная полночь)
	slots, err := uc.repo.GetSlotsInRange(ctx, req.OwnerID, gridStart.UTC(), gridEnd.AddDate(0, 0, 1).UTC())
	if err != nil {
		uc.logger.Error("GetMonthGrid: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// 5. Ролевая фильтрация ДО агрегации: флаги клиента отражают
	// только реально доступный для бронирования инвентарь
	policy := domain.PolicyForRole(req.Role)
	now := uc.timeProvider.Now()
	visible := policy.VisibleSlots(slots, now)

	// 6. Агрегация по локальному дню и обход сетки
	byDay := aggregateByLocalDay(visible, loc)
	cells := buildCells(gridStart, gridEnd, req.Month, req.Year, localToday(now, loc), byDay, policy)

	response := &Response{
		OwnerID:  req.OwnerID,
		Year:     req.Year,
		Month:    int(req.Month),
		Timezone: timezone,
		Cells:    cells,
	}

	// 7. Кладём готовый ответ в кэш (best-effort)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, response); err != nil {
			uc.logger.Warn("GetMonthGrid: cache set failed: %v", err)
		}
	}

	uc.logger.Info("GetMonthGrid: owner=%d, %04d-%02d, role=%s, cells=%d, slots=%d",
		req.OwnerID, req.Year, int(req.Month), req.Role, len(cells), len(visible))

	return response, nil
}
