package delete_day

import "context"

type AvailabilityService interface {
	DeleteDay(ctx context.Context, dayID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
