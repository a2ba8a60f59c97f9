package get_day_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

// fakeRepo in-memory реализация репозитория для тестов
type fakeRepo struct {
	days  map[int64]*domain.AvailableDay
	slots []*domain.AvailableSlot
}

func (f *fakeRepo) GetDayByID(_ context.Context, id int64) (*domain.AvailableDay, error) {
	day, ok := f.days[id]
	if !ok {
		return nil, availabilityRepo.ErrDayNotFound
	}
	return day, nil
}

func (f *fakeRepo) GetSlotsByDayID(_ context.Context, dayID int64) ([]*domain.AvailableSlot, error) {
	out := make([]*domain.AvailableSlot, 0)
	for _, slot := range f.slots {
		if slot.AvailableDayID == dayID {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetSlotsInRange(_ context.Context, ownerID int64, from, to time.Time) ([]*domain.AvailableSlot, error) {
	out := make([]*domain.AvailableSlot, 0)
	for _, slot := range f.slots {
		day, ok := f.days[slot.AvailableDayID]
		if !ok || day.OwnerID != ownerID {
			continue
		}
		if !slot.StartTime.Before(from) && slot.StartTime.Before(to) {
			out = append(out, slot)
		}
	}
	return out, nil
}

// fixedTime детерминированный провайдер времени
type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

func newTestRepo() *fakeRepo {
	dayStart := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	return &fakeRepo{
		days: map[int64]*domain.AvailableDay{
			1: {ID: 1, OwnerID: 10, Date: dayStart},
			2: {ID: 2, OwnerID: 99, Date: dayStart},
		},
		slots: []*domain.AvailableSlot{
			{ID: 1, AvailableDayID: 1, StartTime: dayStart.Add(7 * time.Hour), EndTime: dayStart.Add(8 * time.Hour)},  // в прошлом
			{ID: 2, AvailableDayID: 1, StartTime: dayStart.Add(9 * time.Hour), EndTime: dayStart.Add(10 * time.Hour)}, // свободен
			{ID: 3, AvailableDayID: 1, StartTime: dayStart.Add(10 * time.Hour), EndTime: dayStart.Add(11 * time.Hour),
				IsBooked: true, MeetingReminderID: ptr.Ptr(int64(5))}, // забронирован
		},
	}
}

func newTestUseCase(repo *fakeRepo) *UseCase {
	uc := NewUseCase(repo, "UTC", nopLogger{})
	uc.timeProvider = fixedTime{testNow}
	return uc
}

func selectorByID(t *testing.T, id int64) domain.DaySelector {
	t.Helper()
	sel, err := domain.NewDaySelector(nil, ptr.Ptr(id))
	require.NoError(t, err)
	return sel
}

func selectorByDate(t *testing.T, date string) domain.DaySelector {
	t.Helper()
	sel, err := domain.NewDaySelector(ptr.Ptr(date), nil)
	require.NoError(t, err)
	return sel
}

func TestExecute_AdminSeesAllSlots(t *testing.T) {
	uc := newTestUseCase(newTestRepo())

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:  10,
		Selector: selectorByID(t, 1),
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.True(t, resp.Slots[2].IsBooked)
	assert.True(t, resp.Slots[2].HasReminder)
	assert.Equal(t, "2025-10-15", resp.Slots[0].LocalDate)
}

func TestExecute_ClientSeesOnlyBookableSlots(t *testing.T) {
	uc := newTestUseCase(newTestRepo())

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:  10,
		Selector: selectorByID(t, 1),
		Role:     domain.RoleClient,
	})
	require.NoError(t, err)

	// Прошедший и забронированный слоты скрыты
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(2), resp.Slots[0].ID)
}

func TestExecute_SelectByDate(t *testing.T) {
	uc := newTestUseCase(newTestRepo())

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:  10,
		Selector: selectorByDate(t, "2025-10-15"),
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)

	// Дата в альтернативном формате нормализуется
	resp, err = uc.Execute(context.Background(), &Request{
		OwnerID:  10,
		Selector: selectorByDate(t, "15/10/2025"),
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_EmptyDayByDate(t *testing.T) {
	uc := newTestUseCase(newTestRepo())

	// Для даты без дня возвращается пустой список, а не ошибка
	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:  10,
		Selector: selectorByDate(t, "2025-12-01"),
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ForeignDayHidden(t *testing.T) {
	uc := newTestUseCase(newTestRepo())

	// День принадлежит другому владельцу - для вызывающего он не существует
	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:  10,
		Selector: selectorByID(t, 2),
		Role:     domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestExecute_DayNotFound(t *testing.T) {
	uc := newTestUseCase(newTestRepo())

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:  10,
		Selector: selectorByID(t, 77),
		Role:     domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestExecute_MissingSelector(t *testing.T) {
	uc := newTestUseCase(newTestRepo())

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID: 10,
		Role:    domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrMissingDaySelector)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newTestRepo())

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:  0,
		Selector: selectorByID(t, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		OwnerID:  10,
		Selector: selectorByDate(t, "bad-date"),
	})
	assert.ErrorIs(t, err, timeparse.ErrInvalidDateFormat)

	_, err = uc.Execute(context.Background(), &Request{
		OwnerID:  10,
		Selector: selectorByID(t, 1),
		Timezone: "Nope/Nope",
	})
	assert.ErrorIs(t, err, timeparse.ErrUnknownTimezone)
}
