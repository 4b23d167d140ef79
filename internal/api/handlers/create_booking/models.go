package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ChaletBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ChaletID   int64   `json:"chaletId" validate:"required,gt=0"`
	CheckIn    string  `json:"checkIn" validate:"required"`  // "2025-03-10"
	CheckOut   string  `json:"checkOut" validate:"required"` // "2025-03-13"
	GuestPhone string  `json:"guestPhone" validate:"required,max=32"`
	TotalPrice float64 `json:"totalPrice" validate:"gte=0"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID         int64     `json:"id"`
	Reference  string    `json:"reference"`
	ChaletID   int64     `json:"chaletId"`
	GuestPhone string    `json:"guestPhone"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Nights     int       `json:"nights"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUseCaseRequest разбирает даты и конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("checkIn: %w", err)
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("checkOut: %w", err)
	}

	return &createBooking.Request{
		ChaletID:   r.ChaletID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestPhone: r.GuestPhone,
		TotalPrice: r.TotalPrice,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:         resp.ID,
		Reference:  resp.Reference,
		ChaletID:   resp.ChaletID,
		GuestPhone: resp.GuestPhone,
		CheckIn:    resp.CheckIn.Format(domain.DateFormat),
		CheckOut:   resp.CheckOut.Format(domain.DateFormat),
		Nights:     resp.Nights,
		TotalPrice: resp.TotalPrice,
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt,
	}
}
