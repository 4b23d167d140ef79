package auto_cancel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ChaletBookingService/internal/infra/storage/booking"
)

// UseCase автоотмена просроченных неподтверждённых броней
type UseCase struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, publisher EventPublisher, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute переводит в auto_cancelled все pending брони, созданные не позже now - domain.AutoCancelAfter
// Время передаётся явно. Повторный запуск с тем же now ничего не меняет.
// Если бронь успели подтвердить или отменить между выборкой и обновлением, она пропускается.
// Ошибка хранилища прерывает прогон; уже отменённые ID возвращаются вместе с ошибкой
func (uc *UseCase) Execute(ctx context.Context, now time.Time) ([]int64, error) {
	change := domain.NewAutoCancelChange(now.UTC())

	candidates, err := uc.bookingRepo.ListStalePending(ctx, *change.CreatedBefore)
	if err != nil {
		uc.logger.Error("AutoCancel: failed to list stale bookings: %v", err)
		err = fmt.Errorf("%w: failed to list stale bookings: %v", ErrInternal, err)
		uc.metrics.ObserveSweep(0, err)
		return nil, err
	}

	uc.logger.Info("AutoCancel: %d candidates created at or before %s", len(candidates), change.CreatedBefore.Format(time.RFC3339))

	swept := make([]int64, 0, len(candidates))

	for _, id := range candidates {
		updated, err := uc.bookingRepo.UpdateStatus(ctx, id, change)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.metrics.ObserveTransition(domain.StatusAutoCancelled.String(), false)
				uc.logger.Warn("AutoCancel: skipping booking id=%d: %v", id, err)
				continue
			}

			uc.logger.Error("AutoCancel: failed to cancel booking id=%d, aborting after %d: %v", id, len(swept), err)
			err = fmt.Errorf("%w: booking id=%d: %v", ErrInternal, id, err)
			uc.metrics.ObserveSweep(len(swept), err)
			return swept, err
		}

		uc.metrics.ObserveTransition(domain.StatusAutoCancelled.String(), true)
		swept = append(swept, updated.ID)

		if err := uc.publisher.PublishStatusChanged(ctx, updated); err != nil {
			uc.logger.Error("AutoCancel: failed to publish event for booking id=%d: %v", updated.ID, err)
		}
	}

	uc.metrics.ObserveSweep(len(swept), nil)
	uc.logger.Info("AutoCancel: auto-cancelled %d bookings", len(swept))

	return swept, nil
}
