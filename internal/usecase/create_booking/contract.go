package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByChalet(ctx context.Context, chaletID int64, window *domain.DateRange) ([]*domain.Booking, error)
	LockChalet(ctx context.Context, chaletID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события смены статуса брони
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, booking *domain.Booking) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBookingsCreated()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
