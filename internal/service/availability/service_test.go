package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
)

// fakeRepo in-memory реализация репозитория для тестов
type fakeRepo struct {
	days  map[int64]*domain.AvailableDay
	slots map[int64]*domain.AvailableSlot

	bookedCount map[int64]int

	deletedDays     []int64
	deletedDaySlots []int64
	deletedSlots    []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		days:        make(map[int64]*domain.AvailableDay),
		slots:       make(map[int64]*domain.AvailableSlot),
		bookedCount: make(map[int64]int),
	}
}

func (f *fakeRepo) GetDayByID(_ context.Context, id int64) (*domain.AvailableDay, error) {
	day, ok := f.days[id]
	if !ok {
		return nil, availabilityRepo.ErrDayNotFound
	}
	return day, nil
}

func (f *fakeRepo) CountBookedSlots(_ context.Context, dayID int64) (int, error) {
	return f.bookedCount[dayID], nil
}

func (f *fakeRepo) DeleteSlotsByDayID(_ context.Context, dayID int64) error {
	f.deletedDaySlots = append(f.deletedDaySlots, dayID)
	return nil
}

func (f *fakeRepo) DeleteDay(_ context.Context, dayID int64) error {
	f.deletedDays = append(f.deletedDays, dayID)
	delete(f.days, dayID)
	return nil
}

func (f *fakeRepo) GetSlotByID(_ context.Context, id int64) (*domain.AvailableSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, availabilityRepo.ErrSlotNotFound
	}
	return slot, nil
}

func (f *fakeRepo) DeleteSlot(_ context.Context, id int64) error {
	f.deletedSlots = append(f.deletedSlots, id)
	delete(f.slots, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeCache считает инвалидации для проверки best-effort пути
type fakeCache struct{ invalidated []int64 }

func (c *fakeCache) InvalidateOwner(_ context.Context, ownerID int64) error {
	c.invalidated = append(c.invalidated, ownerID)
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func seedDay(repo *fakeRepo) {
	repo.days[1] = &domain.AvailableDay{
		ID:      1,
		OwnerID: 10,
		Date:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestDeleteDay(t *testing.T) {
	repo := newFakeRepo()
	seedDay(repo)
	svc := newTestService(repo)
	cache := &fakeCache{}
	svc.SetCache(cache)

	err := svc.DeleteDay(context.Background(), 1)
	require.NoError(t, err)

	// Сначала удаляются слоты, затем день
	assert.Equal(t, []int64{1}, repo.deletedDaySlots)
	assert.Equal(t, []int64{1}, repo.deletedDays)
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestDeleteDay_BlockedByBookedSlot(t *testing.T) {
	repo := newFakeRepo()
	seedDay(repo)
	repo.bookedCount[1] = 2
	svc := newTestService(repo)

	err := svc.DeleteDay(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDayHasBookedSlots)

	// Ничего не удалено
	assert.Empty(t, repo.deletedDays)
	assert.Empty(t, repo.deletedDaySlots)
	_, exists := repo.days[1]
	assert.True(t, exists)
}

func TestDeleteDay_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	err := svc.DeleteDay(context.Background(), 42)
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestDeleteSlot(t *testing.T) {
	repo := newFakeRepo()
	seedDay(repo)
	repo.slots[5] = &domain.AvailableSlot{
		ID:             5,
		AvailableDayID: 1,
		StartTime:      time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
	}
	svc := newTestService(repo)
	cache := &fakeCache{}
	svc.SetCache(cache)

	err := svc.DeleteSlot(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, []int64{5}, repo.deletedSlots)
	// День остаётся, даже если слотов больше нет
	_, exists := repo.days[1]
	assert.True(t, exists)
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestDeleteSlot_BlockedWhenBooked(t *testing.T) {
	repo := newFakeRepo()
	seedDay(repo)
	repo.slots[5] = &domain.AvailableSlot{
		ID:             5,
		AvailableDayID: 1,
		IsBooked:       true,
	}
	svc := newTestService(repo)

	err := svc.DeleteSlot(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotIsBooked)

	assert.Empty(t, repo.deletedSlots)
	_, exists := repo.slots[5]
	assert.True(t, exists)
}

func TestDeleteSlot_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	err := svc.DeleteSlot(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
