package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

var (
	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidRange = fmt.Errorf("create_booking: %w", domain.ErrInvalidRange)

	// ErrDatesNotAvailable возвращается, когда даты пересекаются с активным бронированием
	ErrDatesNotAvailable = fmt.Errorf("create_booking: %w", domain.ErrConflict)

	// ErrStayTooLong возвращается, когда проживание длиннее допустимого
	ErrStayTooLong = errors.New("create_booking: stay is too long")

	// ErrInvalidPhone возвращается при некорректном телефоне гостя
	ErrInvalidPhone = errors.New("create_booking: invalid guest phone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_booking: internal error: %w", domain.ErrStorageFailure)
)
