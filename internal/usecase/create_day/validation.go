package create_day

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/slotgen"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if len(req.Dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	if len(req.Dates) > domain.MaxBatchDates {
		return fmt.Errorf("%w: at most %d dates per request", ErrInvalidInput, domain.MaxBatchDates)
	}

	// Неположительная длительность отсекается до любых записей
	if req.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: got %d", slotgen.ErrInvalidDuration, req.SlotDurationMinutes)
	}
	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.BreakDurationMinutes < domain.MinBreakDurationMinutes || req.BreakDurationMinutes > domain.MaxBreakDurationMinutes {
		return fmt.Errorf("%w: break duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinBreakDurationMinutes, domain.MaxBreakDurationMinutes)
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
