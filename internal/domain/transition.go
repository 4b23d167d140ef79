package domain

import (
	"fmt"
	"strings"
	"time"
)

// StatusChange запрошенная смена статуса вместе с полями, которые меняются вместе с ним
type StatusChange struct {
	To BookingStatus

	// Только для StatusConfirmed
	DepositAmount    float64
	PaymentReference string
	CommissionAmount *float64

	// Кто выполнил переход (nil для системных переходов)
	ActorID *int64
	At      time.Time

	// Для автоотмены: переход разрешён, только если бронирование создано не позже этого момента
	CreatedBefore *time.Time
}

// NewConfirmChange Pending -> Confirmed с депозитом и номером платежа
func NewConfirmChange(deposit float64, paymentReference string, actorID int64, at time.Time) (StatusChange, error) {
	if deposit <= 0 {
		return StatusChange{}, fmt.Errorf("%w: deposit must be positive, got %v", ErrInvalidDeposit, deposit)
	}

	ref := strings.TrimSpace(paymentReference)
	if ref == "" {
		return StatusChange{}, fmt.Errorf("%w: payment reference is required", ErrInvalidPaymentReference)
	}
	if len(ref) > MaxPaymentReferenceLength {
		return StatusChange{}, fmt.Errorf("%w: payment reference longer than %d", ErrInvalidPaymentReference, MaxPaymentReferenceLength)
	}

	return StatusChange{
		To:               StatusConfirmed,
		DepositAmount:    deposit,
		PaymentReference: ref,
		ActorID:          &actorID,
		At:               at,
	}, nil
}

// NewCancelChange Pending/Confirmed -> Cancelled вручную
func NewCancelChange(actorID int64, at time.Time) StatusChange {
	return StatusChange{
		To:      StatusCancelled,
		ActorID: &actorID,
		At:      at,
	}
}

// NewAutoCancelChange Pending -> AutoCancelled, только для бронирований старше окна автоотмены
func NewAutoCancelChange(now time.Time) StatusChange {
	cutoff := now.Add(-AutoCancelAfter)
	return StatusChange{
		To:            StatusAutoCancelled,
		At:            now,
		CreatedBefore: &cutoff,
	}
}

// AutoCancelCutoff момент, начиная с которого бронирование, созданное в createdAt, считается просроченным
func AutoCancelCutoff(createdAt time.Time) time.Time {
	return createdAt.Add(AutoCancelAfter)
}
