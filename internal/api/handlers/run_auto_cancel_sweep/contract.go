package run_auto_cancel_sweep

import (
	"context"
	"time"
)

type AutoCancelUseCase interface {
	Execute(ctx context.Context, now time.Time) ([]int64, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
