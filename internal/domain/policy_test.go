package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func TestParseCallerRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseCallerRole("admin"))
	assert.Equal(t, RoleStaff, ParseCallerRole("staff"))
	assert.Equal(t, RoleClient, ParseCallerRole("client"))

	// Пустая и неизвестная роль - клиент
	assert.Equal(t, RoleClient, ParseCallerRole(""))
	assert.Equal(t, RoleClient, ParseCallerRole("superuser"))
}

func TestClientPolicy_VisibleSlots(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	slots := []*AvailableSlot{
		{ID: 1, StartTime: now.Add(time.Hour)},                  // свободен, в будущем
		{ID: 2, StartTime: now.Add(time.Hour), IsBooked: true},  // забронирован
		{ID: 3, StartTime: now.Add(-time.Hour)},                 // в прошлом
		{ID: 4, StartTime: now},                                 // начинается ровно сейчас
		{ID: 5, StartTime: now.Add(2 * time.Hour)},              // свободен, в будущем
	}

	visible := ClientPolicy{}.VisibleSlots(slots, now)
	require.Len(t, visible, 2)
	assert.Equal(t, int64(1), visible[0].ID)
	assert.Equal(t, int64(5), visible[1].ID)
}

func TestAdminPolicy_VisibleSlots(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	slots := []*AvailableSlot{
		{ID: 1, StartTime: now.Add(-time.Hour), IsBooked: true},
		{ID: 2, StartTime: now.Add(time.Hour)},
	}

	// Админ видит всё, включая прошлое и забронированное
	visible := AdminPolicy{}.VisibleSlots(slots, now)
	assert.Len(t, visible, 2)
}

func TestIsFullyBooked(t *testing.T) {
	policy := AdminPolicy{}

	// Все слоты забронированы с напоминаниями - день полностью занят
	assert.True(t, policy.IsFullyBooked(DayAvailability{
		TotalSlots:         3,
		BookedWithReminder: 3,
	}))

	// Бронь без напоминания не делает день полностью занятым
	assert.False(t, policy.IsFullyBooked(DayAvailability{
		TotalSlots:         3,
		BookedWithReminder: 2,
	}))

	// Свободный слот исключает полную занятость
	assert.False(t, policy.IsFullyBooked(DayAvailability{
		TotalSlots:         3,
		BookedWithReminder: 3,
		HasUnbooked:        true,
	}))

	// Пустой день не считается полностью занятым
	assert.False(t, policy.IsFullyBooked(DayAvailability{}))
}

func TestPolicyForRole(t *testing.T) {
	assert.IsType(t, AdminPolicy{}, PolicyForRole(RoleAdmin))
	assert.IsType(t, AdminPolicy{}, PolicyForRole(RoleStaff))
	assert.IsType(t, ClientPolicy{}, PolicyForRole(RoleClient))
}

func TestAvailableDay_HasBookedSlot(t *testing.T) {
	slots := []*AvailableSlot{
		{ID: 1},
		{ID: 2, IsBooked: true, MeetingReminderID: ptr.Ptr(int64(9))},
	}
	assert.True(t, HasBookedSlot(slots))
	assert.False(t, HasBookedSlot(slots[:1]))
	assert.False(t, HasBookedSlot(nil))
}
