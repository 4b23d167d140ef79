package check_availability

import (
	"context"
	"time"
)

type AvailabilityService interface {
	IsAvailable(ctx context.Context, chaletID int64, checkIn, checkOut time.Time) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
