package get_month_grid

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

// fakeRepo отдаёт заранее заданные слоты, фильтруя по окну запроса
type fakeRepo struct {
	slots []*domain.AvailableSlot

	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeRepo) GetSlotsInRange(_ context.Context, _ int64, from, to time.Time) ([]*domain.AvailableSlot, error) {
	f.lastFrom, f.lastTo = from, to
	out := make([]*domain.AvailableSlot, 0)
	for _, slot := range f.slots {
		if !slot.StartTime.Before(from) && slot.StartTime.Before(to) {
			out = append(out, slot)
		}
	}
	return out, nil
}

// fakeCache in-memory кэш для проверки hit/miss
type fakeCache struct {
	data map[string][]byte
	hits int
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	c.sets++
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeRepo) *UseCase {
	uc := NewUseCase(repo, "UTC", nopLogger{})
	uc.timeProvider = fixedTime{testNow}
	return uc
}

func slotAt(start time.Time, booked bool, reminderID *int64) *domain.AvailableSlot {
	return &domain.AvailableSlot{
		AvailableDayID:    1,
		StartTime:         start,
		EndTime:           start.Add(time.Hour),
		IsBooked:          booked,
		MeetingReminderID: reminderID,
	}
}

func TestExecute_GridShape(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID: 1,
		Year:    2025,
		Month:   time.October,
		Role:    domain.RoleAdmin,
	})
	require.NoError(t, err)

	// Сетка всегда состоит из полных недель
	assert.Zero(t, len(resp.Cells)%domain.DaysPerWeek)

	// Октябрь 2025: 1-е - среда, 31-е - пятница, сетка 5 недель
	require.Len(t, resp.Cells, 35)
	assert.Equal(t, "2025-09-28", resp.Cells[0].Date)
	assert.Equal(t, "2025-11-01", resp.Cells[34].Date)

	// Каждая дата месяца встречается ровно один раз и помечена текущим месяцем
	currentMonth := 0
	for _, cell := range resp.Cells {
		if cell.IsCurrentMonth {
			currentMonth++
		}
	}
	assert.Equal(t, 31, currentMonth)
}

func TestExecute_PastFlag(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID: 1,
		Year:    2025,
		Month:   time.October,
		Role:    domain.RoleAdmin,
	})
	require.NoError(t, err)

	for _, cell := range resp.Cells {
		switch cell.Date {
		case "2025-10-14":
			assert.True(t, cell.IsPast)
		case "2025-10-15":
			// Сегодняшний день не считается прошедшим
			assert.False(t, cell.IsPast)
		case "2025-10-16":
			assert.False(t, cell.IsPast)
		}
	}
}

func TestExecute_AvailabilityFlags(t *testing.T) {
	day20 := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	day21 := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)
	day22 := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepo{slots: []*domain.AvailableSlot{
		// 20-е: все слоты забронированы с напоминаниями - полностью занят
		slotAt(day20.Add(9*time.Hour), true, ptr.Ptr(int64(1))),
		slotAt(day20.Add(10*time.Hour), true, ptr.Ptr(int64(2))),
		// 21-е: бронь без напоминания - НЕ полностью занят
		slotAt(day21.Add(9*time.Hour), true, nil),
		// 22-е: есть свободный слот
		slotAt(day22.Add(9*time.Hour), true, ptr.Ptr(int64(3))),
		slotAt(day22.Add(10*time.Hour), false, nil),
	}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID: 1,
		Year:    2025,
		Month:   time.October,
		Role:    domain.RoleAdmin,
	})
	require.NoError(t, err)

	byDate := make(map[string]Cell)
	for _, cell := range resp.Cells {
		byDate[cell.Date] = cell
	}

	assert.True(t, byDate["2025-10-20"].IsFullyBooked)
	assert.False(t, byDate["2025-10-20"].HasAvailable)
	assert.Equal(t, 2, byDate["2025-10-20"].TotalSlots)

	assert.False(t, byDate["2025-10-21"].IsFullyBooked)
	assert.False(t, byDate["2025-10-21"].HasAvailable)

	assert.False(t, byDate["2025-10-22"].IsFullyBooked)
	assert.True(t, byDate["2025-10-22"].HasAvailable)

	// День без слотов
	empty := byDate["2025-10-25"]
	assert.False(t, empty.IsFullyBooked)
	assert.False(t, empty.HasAvailable)
	assert.Zero(t, empty.TotalSlots)
}

func TestExecute_ClientFilteringBeforeAggregation(t *testing.T) {
	day20 := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepo{slots: []*domain.AvailableSlot{
		slotAt(day20.Add(9*time.Hour), true, ptr.Ptr(int64(1))), // забронирован
		slotAt(day20.Add(10*time.Hour), false, nil),             // свободен
	}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID: 1,
		Year:    2025,
		Month:   time.October,
		Role:    domain.RoleClient,
	})
	require.NoError(t, err)

	var cell Cell
	for _, c := range resp.Cells {
		if c.Date == "2025-10-20" {
			cell = c
		}
	}

	// Клиент видит только свободный слот: счётчик учитывает лишь его
	assert.Equal(t, 1, cell.TotalSlots)
	assert.True(t, cell.HasAvailable)
	assert.False(t, cell.IsFullyBooked)
}

func TestExecute_MidnightGrouping(t *testing.T) {
	// 20:30 UTC 19 октября - это уже 00:30 20 октября в Дубае
	slot := slotAt(time.Date(2025, 10, 19, 20, 30, 0, 0, time.UTC), false, nil)
	repo := &fakeRepo{slots: []*domain.AvailableSlot{slot}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:  1,
		Year:     2025,
		Month:    time.October,
		Role:     domain.RoleAdmin,
		Timezone: "Asia/Dubai",
	})
	require.NoError(t, err)

	byDate := make(map[string]Cell)
	for _, cell := range resp.Cells {
		byDate[cell.Date] = cell
	}

	// Слот группируется по локальному дню, а не по UTC-дате
	assert.Equal(t, 1, byDate["2025-10-20"].TotalSlots)
	assert.Zero(t, byDate["2025-10-19"].TotalSlots)
}

func TestExecute_CacheRoundTrip(t *testing.T) {
	day20 := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{slots: []*domain.AvailableSlot{
		slotAt(day20.Add(9*time.Hour), false, nil),
	}}
	uc := newTestUseCase(repo)
	cache := newFakeCache()
	uc.SetCache(cache)

	req := &Request{OwnerID: 1, Year: 2025, Month: time.October, Role: domain.RoleAdmin}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Zero(t, cache.hits)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
}

func TestExecute_CacheKeyVariesByRole(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})
	cache := newFakeCache()
	uc.SetCache(cache)

	_, err := uc.Execute(context.Background(), &Request{OwnerID: 1, Year: 2025, Month: time.October, Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), &Request{OwnerID: 1, Year: 2025, Month: time.October, Role: domain.RoleClient})
	require.NoError(t, err)

	// Роли кэшируются раздельно
	assert.Equal(t, 2, cache.sets)
	assert.Zero(t, cache.hits)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{OwnerID: 0, Year: 2025, Month: time.October})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{OwnerID: 1, Year: 2025, Month: 13})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{OwnerID: 1, Year: 2025, Month: time.October, Timezone: "Bad/Zone"})
	assert.ErrorIs(t, err, timeparse.ErrUnknownTimezone)
}
