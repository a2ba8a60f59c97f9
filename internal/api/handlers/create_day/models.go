package create_day

import (
	createDay "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_day"
)

// CreateDaysRequest HTTP request model
// Одна дата в dates - обычное создание дня, несколько дат - пакетное
type CreateDaysRequest struct {
	Dates                []string `json:"dates"`                // "2025-10-15" или "15/10/2025"
	FromTime             string   `json:"fromTime"`             // "09:00"
	ToTime               string   `json:"toTime"`               // "17:00"
	SlotDurationMinutes  int      `json:"slotDurationMinutes"`  // 0 - дефолт сервиса
	BreakDurationMinutes int      `json:"breakDurationMinutes"` // 0 - без перерывов
	Timezone             string   `json:"timezone,omitempty"`   // IANA, опционально
}

// DayResultResponse результат обработки одной даты
type DayResultResponse struct {
	Date         string `json:"date"`
	DayID        int64  `json:"dayId,omitempty"`
	SlotsCreated int    `json:"slotsCreated"`
	Regenerated  bool   `json:"regenerated"`
	Error        string `json:"error,omitempty"`
}

// CreateDaysResponse HTTP response model
type CreateDaysResponse struct {
	OwnerID  int64               `json:"ownerId"`
	Timezone string              `json:"timezone"`
	Results  []DayResultResponse `json:"results"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateDaysRequest) ToUseCaseRequest(ownerID int64) *createDay.Request {
	return &createDay.Request{
		OwnerID:              ownerID,
		Dates:                r.Dates,
		FromTime:             r.FromTime,
		ToTime:               r.ToTime,
		SlotDurationMinutes:  r.SlotDurationMinutes,
		BreakDurationMinutes: r.BreakDurationMinutes,
		Timezone:             r.Timezone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createDay.Response) *CreateDaysResponse {
	results := make([]DayResultResponse, 0, len(resp.Results))
	for _, res := range resp.Results {
		results = append(results, DayResultResponse{
			Date:         res.Date,
			DayID:        res.DayID,
			SlotsCreated: res.SlotsCreated,
			Regenerated:  res.Regenerated,
			Error:        res.Error,
		})
	}

	return &CreateDaysResponse{
		OwnerID:  resp.OwnerID,
		Timezone: resp.Timezone,
		Results:  results,
	}
}
