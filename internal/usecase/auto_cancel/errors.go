package auto_cancel

import (
	"fmt"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

var (
	// ErrInternal возвращается при ошибке хранилища, прогон прерывается
	ErrInternal = fmt.Errorf("auto_cancel: internal error: %w", domain.ErrStorageFailure)
)
