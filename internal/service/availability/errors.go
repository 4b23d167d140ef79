package availability

import (
	"fmt"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

var (
	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidRange = fmt.Errorf("availability: %w", domain.ErrInvalidRange)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("availability: internal error: %w", domain.ErrStorageFailure)
)
