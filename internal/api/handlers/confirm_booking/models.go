package confirm_booking

import (
	"github.com/m04kA/SMC-ChaletBookingService/internal/service/bookings/models"
)

// ConfirmBookingRequest HTTP request model
type ConfirmBookingRequest struct {
	DepositAmount    float64 `json:"depositAmount" validate:"gt=0"`
	PaymentReference string  `json:"paymentReference" validate:"required,max=100"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ConfirmBookingRequest) ToServiceRequest(userID int64) *models.ConfirmBookingRequest {
	return &models.ConfirmBookingRequest{
		UserID:           userID,
		DepositAmount:    r.DepositAmount,
		PaymentReference: r.PaymentReference,
	}
}
