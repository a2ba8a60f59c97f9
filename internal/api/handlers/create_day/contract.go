package create_day

import (
	"context"

	createDay "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_day"
)

type CreateDayUseCase interface {
	Execute(ctx context.Context, req *createDay.Request) (*createDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
