package events

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

const (
	EventBookingCreated       = "BookingCreated"
	EventBookingConfirmed     = "BookingConfirmed"
	EventBookingCancelled     = "BookingCancelled"
	EventBookingAutoCancelled = "BookingAutoCancelled"

	envelopeVersion = 1
)

// Envelope общая обёртка событий бронирования
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // reference брони
	Payload       json.RawMessage `json:"payload"`
}

// BookingStatusPayload состояние брони после перехода
type BookingStatusPayload struct {
	BookingID        int64    `json:"booking_id"`
	Reference        string   `json:"reference"`
	ChaletID         int64    `json:"chalet_id"`
	GuestPhone       string   `json:"guest_phone"`
	CheckIn          string   `json:"check_in"`
	CheckOut         string   `json:"check_out"`
	Status           string   `json:"status"`
	TotalPrice       float64  `json:"total_price"`
	DepositAmount    *float64 `json:"deposit_amount,omitempty"`
	PaymentReference *string  `json:"payment_reference,omitempty"`
	ActorID          *int64   `json:"actor_id,omitempty"`
}

// EventTypeFor тип события для статуса, в который перешла бронь
func EventTypeFor(status domain.BookingStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return EventBookingConfirmed
	case domain.StatusCancelled:
		return EventBookingCancelled
	case domain.StatusAutoCancelled:
		return EventBookingAutoCancelled
	default:
		return EventBookingCreated
	}
}

func payloadFrom(b *domain.Booking) BookingStatusPayload {
	p := BookingStatusPayload{
		BookingID:        b.ID,
		Reference:        b.Reference,
		ChaletID:         b.ChaletID,
		GuestPhone:       b.GuestPhone,
		CheckIn:          b.CheckIn.Format(domain.DateFormat),
		CheckOut:         b.CheckOut.Format(domain.DateFormat),
		Status:           b.Status.String(),
		TotalPrice:       b.TotalPrice,
		DepositAmount:    b.DepositAmount,
		PaymentReference: b.PaymentReference,
	}
	switch b.Status {
	case domain.StatusConfirmed:
		p.ActorID = b.ConfirmedBy
	case domain.StatusCancelled:
		p.ActorID = b.CancelledBy
	}
	return p
}
