package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, change domain.StatusChange) (*domain.Booking, error)
}

// ChaletServiceClient интерфейс клиента каталога шале
type ChaletServiceClient interface {
	GetChaletWithGracefulDegradation(ctx context.Context, chaletID int64) (*domain.Chalet, error)
}

// EventPublisher публикует события смены статуса брони
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, booking *domain.Booking) error
}

// Metrics бизнес-метрики
type Metrics interface {
	ObserveTransition(to string, ok bool)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
