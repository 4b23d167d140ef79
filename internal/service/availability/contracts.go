package availability

import (
	"context"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByChalet(ctx context.Context, chaletID int64, window *domain.DateRange) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
