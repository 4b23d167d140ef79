package auto_cancel

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListStalePending(ctx context.Context, cutoff time.Time) ([]int64, error)
	UpdateStatus(ctx context.Context, id int64, change domain.StatusChange) (*domain.Booking, error)
}

// EventPublisher публикует события смены статуса брони
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, booking *domain.Booking) error
}

// Metrics метрики прогонов автоотмены
type Metrics interface {
	ObserveTransition(to string, ok bool)
	ObserveSweep(swept int, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
