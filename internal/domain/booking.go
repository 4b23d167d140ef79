package domain

import (
	"time"
)

// Booking represents a chalet reservation
type Booking struct {
	ID        int64
	Reference string // Человекочитаемый номер брони, назначается при создании и не меняется
	ChaletID  int64
	// Телефон гостя используется как идентификатор гостя (отдельного аккаунта нет)
	GuestPhone string

	CheckIn  time.Time // Дата заезда (включительно)
	CheckOut time.Time // Дата выезда (не включительно)

	TotalPrice       float64
	DepositAmount    *float64 // Есть только у подтверждённых бронирований
	PaymentReference *string
	CommissionAmount *float64

	Status BookingStatus

	// Аудит
	ConfirmedBy *int64
	ConfirmedAt *time.Time
	CancelledBy *int64
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the half-open stay range [CheckIn, CheckOut)
func (b *Booking) Range() DateRange {
	return DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

// Nights returns the number of nights of the stay
func (b *Booking) Nights() int {
	return b.Range().Nights()
}

// IsActive returns true if the booking blocks availability (pending or confirmed)
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsStale returns true if a pending booking has outlived the auto-cancel window at now
func (b *Booking) IsStale(now time.Time) bool {
	return b.Status == StatusPending && !now.Before(AutoCancelCutoff(b.CreatedAt))
}

// Apply применяет смену статуса к бронированию
// Возвращает *InvalidTransitionError, если переход из текущего статуса запрещён
// или не выполнено его предусловие; в этом случае бронирование не меняется
func (b *Booking) Apply(change StatusChange) error {
	if !CanTransition(b.Status, change.To) {
		return &InvalidTransitionError{BookingID: b.ID, Current: b.Status, Requested: change.To}
	}
	if change.CreatedBefore != nil && b.CreatedAt.After(*change.CreatedBefore) {
		return &InvalidTransitionError{BookingID: b.ID, Current: b.Status, Requested: change.To}
	}

	at := change.At
	switch change.To {
	case StatusConfirmed:
		deposit := change.DepositAmount
		ref := change.PaymentReference
		b.DepositAmount = &deposit
		b.PaymentReference = &ref
		b.CommissionAmount = change.CommissionAmount
		b.ConfirmedBy = change.ActorID
		b.ConfirmedAt = &at
	case StatusCancelled:
		// Депозит хранится только у подтверждённых, номер платежа остаётся для истории
		b.DepositAmount = nil
		b.CancelledBy = change.ActorID
		b.CancelledAt = &at
	case StatusAutoCancelled:
		b.CancelledAt = &at
	case StatusPending:
		// CanTransition не пускает сюда
		return &InvalidTransitionError{BookingID: b.ID, Current: b.Status, Requested: change.To}
	}

	b.Status = change.To
	b.UpdatedAt = at
	return nil
}

// Clone returns a deep copy of the booking
func (b *Booking) Clone() *Booking {
	c := *b
	c.DepositAmount = clonePtr(b.DepositAmount)
	c.PaymentReference = clonePtr(b.PaymentReference)
	c.CommissionAmount = clonePtr(b.CommissionAmount)
	c.ConfirmedBy = clonePtr(b.ConfirmedBy)
	c.ConfirmedAt = clonePtr(b.ConfirmedAt)
	c.CancelledBy = clonePtr(b.CancelledBy)
	c.CancelledAt = clonePtr(b.CancelledAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// BookingFilter критерии выборки бронирований для списков в админке
// Передаётся по значению в каждый вызов, общего изменяемого состояния нет
type BookingFilter struct {
	Status      *BookingStatus // nil = все статусы
	ChaletID    *int64
	CheckInFrom *time.Time // check_in_date >= CheckInFrom
	CheckInTo   *time.Time // check_in_date <= CheckInTo
	GuestPhone  *string
	Limit       int // 0 = без ограничения
	Offset      int
}

// Matches проверяет бронирование на соответствие фильтру (без учёта пагинации)
func (f BookingFilter) Matches(b *Booking) bool {
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.ChaletID != nil && b.ChaletID != *f.ChaletID {
		return false
	}
	if f.CheckInFrom != nil && b.CheckIn.Before(DateOnly(*f.CheckInFrom)) {
		return false
	}
	if f.CheckInTo != nil && b.CheckIn.After(DateOnly(*f.CheckInTo)) {
		return false
	}
	if f.GuestPhone != nil && b.GuestPhone != *f.GuestPhone {
		return false
	}
	return true
}
