package suggest_deposit

import (
	"context"

	"github.com/m04kA/SMC-ChaletBookingService/internal/service/bookings/models"
)

type BookingService interface {
	SuggestDeposit(ctx context.Context, bookingID int64) (*models.DepositSuggestionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
