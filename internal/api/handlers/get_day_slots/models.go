package get_day_slots

import (
	"time"

	getDaySlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_day_slots"
)

// SlotResponse один слот дня
type SlotResponse struct {
	ID          int64  `json:"id"`
	DayID       int64  `json:"dayId"`
	StartTime   string `json:"startTime"` // RFC3339, UTC
	EndTime     string `json:"endTime"`   // RFC3339, UTC
	IsBooked    bool   `json:"isBooked"`
	HasReminder bool   `json:"hasReminder"`
	LocalDate   string `json:"localDate"`
}

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	OwnerID  int64          `json:"ownerId"`
	Timezone string         `json:"timezone"`
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:          slot.ID,
			DayID:       slot.DayID,
			StartTime:   slot.StartTime.Format(time.RFC3339),
			EndTime:     slot.EndTime.Format(time.RFC3339),
			IsBooked:    slot.IsBooked,
			HasReminder: slot.HasReminder,
			LocalDate:   slot.LocalDate,
		})
	}

	return &DaySlotsResponse{
		OwnerID:  resp.OwnerID,
		Timezone: resp.Timezone,
		Slots:    slots,
	}
}
