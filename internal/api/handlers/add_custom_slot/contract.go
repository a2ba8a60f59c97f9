package add_custom_slot

import (
	"context"

	addCustomSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/add_custom_slot"
)

type AddCustomSlotUseCase interface {
	Execute(ctx context.Context, req *addCustomSlot.Request) (*addCustomSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
