package add_custom_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DayID <= 0 {
		return fmt.Errorf("%w: dayID must be positive", ErrInvalidInput)
	}

	from, err := types.NewTimeStringFromString(req.FromTime)
	if err != nil {
		return fmt.Errorf("%w: fromTime: %v", ErrInvalidInput, err)
	}
	to, err := types.NewTimeStringFromString(req.ToTime)
	if err != nil {
		return fmt.Errorf("%w: toTime: %v", ErrInvalidInput, err)
	}
	if !from.IsBefore(to) {
		return fmt.Errorf("%w: fromTime must be before toTime", ErrInvalidInput)
	}

	return nil
}

// checkConflict проверяет кандидата [start, end) против КАЖДОГО слота дня
// Ручные слоты могут добавляться в произвольном порядке, поэтому проверки
// только соседних по времени слотов недостаточно
func checkConflict(existing []*domain.AvailableSlot, start, end time.Time) error {
	for _, slot := range existing {
		if slot.Overlaps(start, end) {
			return fmt.Errorf("%w: candidate %s-%s intersects slot id=%d (%s-%s)",
				ErrSlotOverlap,
				start.Format(time.RFC3339), end.Format(time.RFC3339),
				slot.ID,
				slot.StartTime.Format(time.RFC3339), slot.EndTime.Format(time.RFC3339))
		}
	}
	return nil
}
