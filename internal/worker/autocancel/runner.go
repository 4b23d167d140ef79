package autocancel

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/lock"
)

// Sweeper прогон автоотмены
type Sweeper interface {
	Execute(ctx context.Context, now time.Time) ([]int64, error)
}

// Locker распределённая блокировка, чтобы прогон выполнял один экземпляр сервиса
type Locker interface {
	TryAcquire(ctx context.Context) (func(context.Context) error, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Runner периодически запускает автоотмену
type Runner struct {
	sweeper  Sweeper
	locker   Locker
	interval time.Duration
	now      func() time.Time
	logger   Logger
}

// NewRunner создает планировщик автоотмены
func NewRunner(sweeper Sweeper, locker Locker, interval time.Duration, logger Logger) *Runner {
	return &Runner{
		sweeper:  sweeper,
		locker:   locker,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run блокируется до отмены ctx; первый прогон выполняется сразу
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("AutoCancel worker started, interval=%s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.RunOnce(ctx)

		select {
		case <-ctx.Done():
			r.logger.Info("AutoCancel worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce выполняет один прогон под блокировкой
// Возвращает false, если блокировку держит другой экземпляр или прогон завершился ошибкой
func (r *Runner) RunOnce(ctx context.Context) bool {
	release, err := r.locker.TryAcquire(ctx)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			r.logger.Info("AutoCancel worker: sweep is running on another instance, skipping")
			return false
		}
		r.logger.Error("AutoCancel worker: failed to acquire lock: %v", err)
		return false
	}

	defer func() {
		// Освобождаем даже после отмены ctx, иначе блокировка провисит до истечения TTL
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			r.logger.Warn("AutoCancel worker: failed to release lock: %v", err)
		}
	}()

	swept, err := r.sweeper.Execute(ctx, r.now())
	if err != nil {
		r.logger.Error("AutoCancel worker: sweep failed after %d bookings: %v", len(swept), err)
		return false
	}

	if len(swept) > 0 {
		r.logger.Info("AutoCancel worker: auto-cancelled bookings %v", swept)
	}
	return true
}
