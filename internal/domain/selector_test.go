package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func TestNewDaySelector(t *testing.T) {
	t.Run("by date", func(t *testing.T) {
		sel, err := NewDaySelector(ptr.Ptr("2025-10-15"), nil)
		require.NoError(t, err)

		date, ok := sel.ByDate()
		assert.True(t, ok)
		assert.Equal(t, "2025-10-15", date)

		_, ok = sel.ByID()
		assert.False(t, ok)
	})

	t.Run("by id", func(t *testing.T) {
		sel, err := NewDaySelector(nil, ptr.Ptr(int64(7)))
		require.NoError(t, err)

		id, ok := sel.ByID()
		assert.True(t, ok)
		assert.Equal(t, int64(7), id)

		_, ok = sel.ByDate()
		assert.False(t, ok)
	})

	t.Run("neither", func(t *testing.T) {
		_, err := NewDaySelector(nil, nil)
		assert.ErrorIs(t, err, ErrMissingDaySelector)
	})

	t.Run("both", func(t *testing.T) {
		_, err := NewDaySelector(ptr.Ptr("2025-10-15"), ptr.Ptr(int64(7)))
		assert.ErrorIs(t, err, ErrAmbiguousDaySelector)
	})
}
