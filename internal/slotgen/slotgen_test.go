package slotgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_HourlySlots(t *testing.T) {
	// 09:00-17:00 UTC, час без перерывов: последний слот 15:00-16:00,
	// слот 16:00-17:00 не попадает (его конец не СТРОГО раньше конца окна)
	slots, err := Generate("2025-10-15", "09:00", "17:00", 60, 0, "UTC")
	require.NoError(t, err)
	require.Len(t, slots, 7)

	assert.Equal(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC), slots[0].StartUTC)
	assert.Equal(t, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC), slots[0].EndUTC)
	assert.Equal(t, time.Date(2025, 10, 15, 15, 0, 0, 0, time.UTC), slots[6].StartUTC)
	assert.Equal(t, time.Date(2025, 10, 15, 16, 0, 0, 0, time.UTC), slots[6].EndUTC)
}

func TestGenerate_WithBreaks(t *testing.T) {
	// 60 минут слот + 15 минут перерыв в окне 09:00-17:00 даёт 6 слотов
	slots, err := Generate("2025-10-15", "09:00", "17:00", 60, 15, "UTC")
	require.NoError(t, err)
	require.Len(t, slots, 6)

	// Слоты не пересекаются и идут строго по возрастанию
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].EndUTC.Before(slots[i].StartUTC) || slots[i-1].EndUTC.Equal(slots[i].StartUTC),
			"slot %d overlaps slot %d", i-1, i)
	}

	assert.Equal(t, time.Date(2025, 10, 15, 15, 15, 0, 0, time.UTC), slots[5].StartUTC)
	assert.Equal(t, time.Date(2025, 10, 15, 16, 15, 0, 0, time.UTC), slots[5].EndUTC)
}

func TestGenerate_TimezoneConversion(t *testing.T) {
	// 09:00 по Дубаю (UTC+4) - это 05:00 UTC
	slots, err := Generate("2025-10-15", "09:00", "11:00", 60, 0, "Asia/Dubai")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2025, 10, 15, 5, 0, 0, 0, time.UTC), slots[0].StartUTC)
}

func TestGenerate_WindowTooShort(t *testing.T) {
	// Окно короче слота - пустой результат, не ошибка
	slots, err := Generate("2025-10-15", "09:00", "09:30", 60, 0, "UTC")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerate_ExactFitExcluded(t *testing.T) {
	// Слот, чей конец совпадает с концом окна, не генерируется
	slots, err := Generate("2025-10-15", "09:00", "10:00", 60, 0, "UTC")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerate_InvalidInput(t *testing.T) {
	_, err := Generate("2025-10-15", "09:00", "17:00", 0, 0, "UTC")
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Generate("2025-10-15", "09:00", "17:00", 60, -5, "UTC")
	assert.ErrorIs(t, err, ErrInvalidBreak)

	_, err = Generate("2025-10-15", "17:00", "09:00", 60, 0, "UTC")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Generate("2025-10-15", "09:00", "09:00", 60, 0, "UTC")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate("2025-10-15", "08:00", "20:00", 45, 10, "Europe/Moscow")
	require.NoError(t, err)
	second, err := Generate("2025-10-15", "08:00", "20:00", 45, 10, "Europe/Moscow")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
