package get_booked_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

type AvailabilityService interface {
	BookedDates(ctx context.Context, chaletID int64, window *domain.DateRange) ([]time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
