package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ChaletBookingService/internal/infra/storage/booking"
)

// maxAttempts сколько раз повторять транзакцию при коллизии номера брони или отказе сериализации
const maxAttempts = 3

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции
// под advisory-блокировкой шале, поэтому две пересекающиеся брони не создаются даже при гонке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: chalet=%d, checkIn=%s, checkOut=%s",
		req.ChaletID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных (до обращения к хранилищу)
	stay, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().UTC()

	var result *domain.Booking

	for attempt := 1; ; attempt++ {
		result, err = uc.create(ctx, req, stay, now)
		if isRetryable(err) && attempt < maxAttempts {
			uc.logger.Warn("CreateBooking: retrying after attempt %d: %v", attempt, err)
			continue
		}
		break
	}

	if err != nil {
		return nil, uc.mapError(req, err)
	}

	uc.metrics.IncBookingsCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	// Событие публикуется после коммита, ошибка публикации не отменяет бронь
	if err := uc.publisher.PublishStatusChanged(ctx, result); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:         result.ID,
		Reference:  result.Reference,
		ChaletID:   result.ChaletID,
		GuestPhone: result.GuestPhone,
		CheckIn:    result.CheckIn,
		CheckOut:   result.CheckOut,
		Nights:     result.Nights(),
		TotalPrice: result.TotalPrice,
		Status:     result.Status.String(),
		CreatedAt:  result.CreatedAt,
	}, nil
}

func (uc *UseCase) create(ctx context.Context, req *Request, stay domain.DateRange, now time.Time) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Сериализуем создание броней для одного шале
		if err := uc.bookingRepo.LockChalet(txCtx, req.ChaletID); err != nil {
			return err
		}

		// 3. Активные брони шале, пересекающие интервал (FOR UPDATE)
		active, err := uc.bookingRepo.GetActiveByChalet(txCtx, req.ChaletID, &stay)
		if err != nil {
			return err
		}

		// 4. Проверяем доступность
		if conflict := findConflict(stay, active); conflict != nil {
			uc.logger.Warn("CreateBooking: chalet=%d dates conflict with booking id=%d (%s..%s)",
				req.ChaletID, conflict.ID,
				conflict.CheckIn.Format(domain.DateFormat), conflict.CheckOut.Format(domain.DateFormat))
			return ErrDatesNotAvailable
		}

		// 5. Сохраняем бронирование
		booking := &domain.Booking{
			Reference:  domain.NewReference(),
			ChaletID:   req.ChaletID,
			GuestPhone: req.GuestPhone,
			CheckIn:    stay.CheckIn,
			CheckOut:   stay.CheckOut,
			TotalPrice: req.TotalPrice,
			Status:     domain.StatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	return result, err
}

// mapError переводит ошибки хранилища в ошибки use case
func (uc *UseCase) mapError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrDatesNotAvailable):
		return err
	case errors.Is(err, bookingRepo.ErrDatesOverlap):
		// Параллельная транзакция успела занять даты раньше нас
		uc.logger.Warn("CreateBooking: chalet=%d lost concurrent create: %v", req.ChaletID, err)
		return fmt.Errorf("%w: %v", ErrDatesNotAvailable, err)
	default:
		uc.logger.Error("CreateBooking: failed to create booking for chalet=%d: %v", req.ChaletID, err)
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
}

func isRetryable(err error) bool {
	return errors.Is(err, bookingRepo.ErrDuplicateReference) || errors.Is(err, bookingRepo.ErrSerialization)
}
