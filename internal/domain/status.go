package domain

import (
	"database/sql/driver"
	"fmt"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending       BookingStatus = "pending"
	StatusConfirmed     BookingStatus = "confirmed"
	StatusCancelled     BookingStatus = "cancelled"
	StatusAutoCancelled BookingStatus = "auto_cancelled"
)

// AllStatuses полный список статусов
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusAutoCancelled,
}

// ActiveStatuses статусы, которые занимают даты шале
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// transitions допустимые переходы: from -> to
var transitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending: {
		StatusConfirmed:     true,
		StatusCancelled:     true,
		StatusAutoCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
	},
	StatusCancelled:     {},
	StatusAutoCancelled: {},
}

// ParseBookingStatus конвертирует строку в BookingStatus
// Неизвестный статус - ошибка, а не молчаливое значение по умолчанию
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// IsValid returns true for the four known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusAutoCancelled:
		return true
	default:
		return false
	}
}

// IsActive returns true if the status blocks availability
func (s BookingStatus) IsActive() bool {
	switch s {
	case StatusPending, StatusConfirmed:
		return true
	case StatusCancelled, StatusAutoCancelled:
		return false
	default:
		return false
	}
}

// IsCancelled returns true for both manual and automatic cancellation
func (s BookingStatus) IsCancelled() bool {
	return s == StatusCancelled || s == StatusAutoCancelled
}

func (s BookingStatus) String() string {
	return string(s)
}

// CanTransition проверяет, разрешён ли переход from -> to
func CanTransition(from, to BookingStatus) bool {
	return transitions[from][to]
}

// AllowedFrom возвращает статусы, из которых разрешён переход в to
// Используется репозиторием для атомарного UPDATE ... WHERE status IN (...)
func AllowedFrom(to BookingStatus) []BookingStatus {
	result := make([]BookingStatus, 0, len(AllStatuses))
	for _, from := range AllStatuses {
		if CanTransition(from, to) {
			result = append(result, from)
		}
	}
	return result
}

// Scan implements sql.Scanner, rejecting unknown statuses
func (s *BookingStatus) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrUnknownStatus, src)
	}

	status, err := ParseBookingStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Value implements driver.Valuer
func (s BookingStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
	}
	return string(s), nil
}
