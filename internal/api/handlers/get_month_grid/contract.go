package get_month_grid

import (
	"context"

	getMonthGrid "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_month_grid"
)

type GetMonthGridUseCase interface {
	Execute(ctx context.Context, req *getMonthGrid.Request) (*getMonthGrid.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
