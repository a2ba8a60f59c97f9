package get_month_grid

import (
	getMonthGrid "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_month_grid"
)

// CellResponse одна ячейка календарной сетки
type CellResponse struct {
	Date           string `json:"date"`
	DayOfMonth     int    `json:"dayOfMonth"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
	IsPast         bool   `json:"isPast"`
	HasAvailable   bool   `json:"hasAvailable"`
	IsFullyBooked  bool   `json:"isFullyBooked"`
	TotalSlots     int    `json:"totalSlots"`
}

// MonthGridResponse HTTP response model: полные недели, покрывающие месяц
type MonthGridResponse struct {
	OwnerID  int64          `json:"ownerId"`
	Year     int            `json:"year"`
	Month    int            `json:"month"`
	Timezone string         `json:"timezone"`
	Cells    []CellResponse `json:"cells"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthGrid.Response) *MonthGridResponse {
	cells := make([]CellResponse, 0, len(resp.Cells))
	for _, cell := range resp.Cells {
		cells = append(cells, CellResponse{
			Date:           cell.Date,
			DayOfMonth:     cell.DayOfMonth,
			IsCurrentMonth: cell.IsCurrentMonth,
			IsPast:         cell.IsPast,
			HasAvailable:   cell.HasAvailable,
			IsFullyBooked:  cell.IsFullyBooked,
			TotalSlots:     cell.TotalSlots,
		})
	}

	return &MonthGridResponse{
		OwnerID:  resp.OwnerID,
		Year:     resp.Year,
		Month:    resp.Month,
		Timezone: resp.Timezone,
		Cells:    cells,
	}
}
