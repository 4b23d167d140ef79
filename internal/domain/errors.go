package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange дата выезда не позже даты заезда
	ErrInvalidRange = errors.New("domain: check-out must be after check-in")

	// ErrConflict даты пересекаются с активным бронированием
	ErrConflict = errors.New("domain: dates are not available")

	// ErrInvalidTransition переход из текущего статуса запрещён
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrNotFound бронирование не найдено
	ErrNotFound = errors.New("domain: booking not found")

	// ErrStorageFailure ошибка хранилища
	ErrStorageFailure = errors.New("domain: storage failure")

	// ErrUnknownStatus неизвестный статус бронирования
	ErrUnknownStatus = errors.New("domain: unknown booking status")

	// ErrInvalidDeposit депозит должен быть положительным
	ErrInvalidDeposit = errors.New("domain: invalid deposit amount")

	// ErrInvalidPaymentReference пустой номер платежа
	ErrInvalidPaymentReference = errors.New("domain: invalid payment reference")
)

// InvalidTransitionError описывает отклонённый переход: текущий и запрошенный статус
type InvalidTransitionError struct {
	BookingID int64
	Current   BookingStatus
	Requested BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%v: booking id=%d is %s, cannot move to %s",
		ErrInvalidTransition, e.BookingID, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
