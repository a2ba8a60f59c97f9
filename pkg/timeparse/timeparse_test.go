package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical", input: "2025-10-15", want: "2025-10-15"},
		{name: "slash format", input: "15/10/2025", want: "2025-10-15"},
		{name: "slash format without zero padding", input: "5/1/2025", want: "2025-01-05"},
		{name: "rfc3339 fallback", input: "2025-01-02T00:00:00Z", want: "2025-01-02"},
		{name: "with spaces", input: "  2025-10-15  ", want: "2025-10-15"},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "two slash parts", input: "15/2025", wantErr: true},
		{name: "nonexistent date", input: "2025-02-30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDateFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToUTC(t *testing.T) {
	// 09:00 в Дубае (UTC+4) - это 05:00 UTC
	got, err := ToUTC("2025-10-15", "09:00", "Asia/Dubai")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 5, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestToUTC_UnknownTimezone(t *testing.T) {
	_, err := ToUTC("2025-10-15", "09:00", "Mars/Olympus")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestToUTC_InvalidTime(t *testing.T) {
	_, err := ToUTC("2025-10-15", "25:00", "UTC")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLocalDateTime)
}

func TestLocalDay_DiffersFromUTCDate(t *testing.T) {
	loc, err := LoadLocation("Asia/Dubai")
	require.NoError(t, err)

	// 20:30 UTC 1 января - это уже 00:30 2 января в Дубае
	instant := time.Date(2025, 1, 1, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-02", LocalDay(instant, loc))

	// А в UTC тот же момент относится к 1 января
	assert.Equal(t, "2025-01-01", LocalDay(instant, time.UTC))
}

func TestLocalMidnight(t *testing.T) {
	// Полночь 15 октября в Дубае - 20:00 UTC предыдущего дня
	got, err := LocalMidnight("2025-10-15", "Asia/Dubai")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 14, 20, 0, 0, 0, time.UTC), got)
}

func TestLocalMidnight_RoundTrip(t *testing.T) {
	// Локальная полночь, прочитанная обратно в той же таймзоне,
	// даёт исходную дату
	const timezone = "America/New_York"
	loc, err := LoadLocation(timezone)
	require.NoError(t, err)

	midnight, err := LocalMidnight("2025-07-04", timezone)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-04", LocalDay(midnight, loc))
}
