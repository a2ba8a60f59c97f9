package add_custom_slot

import (
	"time"

	addCustomSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/add_custom_slot"
)

// AddSlotRequest HTTP request model
type AddSlotRequest struct {
	FromTime string `json:"fromTime"`           // "13:30"
	ToTime   string `json:"toTime"`             // "14:15"
	Timezone string `json:"timezone,omitempty"` // IANA, опционально
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID        int64  `json:"id"`
	DayID     int64  `json:"dayId"`
	StartTime string `json:"startTime"` // RFC3339, UTC
	EndTime   string `json:"endTime"`   // RFC3339, UTC
	LocalDate string `json:"localDate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddSlotRequest) ToUseCaseRequest(dayID int64) *addCustomSlot.Request {
	return &addCustomSlot.Request{
		DayID:    dayID,
		FromTime: r.FromTime,
		ToTime:   r.ToTime,
		Timezone: r.Timezone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addCustomSlot.Response) *SlotResponse {
	return &SlotResponse{
		ID:        resp.SlotID,
		DayID:     resp.DayID,
		StartTime: resp.StartTime.Format(time.RFC3339),
		EndTime:   resp.EndTime.Format(time.RFC3339),
		LocalDate: resp.LocalDate,
	}
}
