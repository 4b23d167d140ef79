package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// Request модели

// ConfirmBookingRequest запрос на подтверждение брони после получения депозита
type ConfirmBookingRequest struct {
	UserID           int64   `json:"userId"`
	DepositAmount    float64 `json:"depositAmount"`
	PaymentReference string  `json:"paymentReference"`
}

// CancelBookingRequest запрос на отмену брони
type CancelBookingRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// ListBookingsRequest фильтры списка бронирований
type ListBookingsRequest struct {
	Status     *string    `json:"status,omitempty"`   // nil или "all" - все статусы
	ChaletID   *int64     `json:"chaletId,omitempty"`
	From       *time.Time `json:"from,omitempty"`     // check_in_date >= From
	To         *time.Time `json:"to,omitempty"`       // check_in_date <= To
	GuestPhone *string    `json:"phone,omitempty"`
	Limit      int        `json:"limit,omitempty"`
	Offset     int        `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		ChaletID:    r.ChaletID,
		CheckInFrom: r.From,
		CheckInTo:   r.To,
		GuestPhone:  r.GuestPhone,
		Limit:       r.Limit,
		Offset:      r.Offset,
	}

	if r.Status != nil && *r.Status != StatusAll {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return filter, fmt.Errorf("from %s is after to %s",
			r.From.Format(domain.DateFormat), r.To.Format(domain.DateFormat))
	}

	if r.Limit < 0 || r.Offset < 0 {
		return filter, fmt.Errorf("limit and offset must not be negative")
	}

	return filter, nil
}

// StatusAll значение фильтра статуса "все"
const StatusAll = "all"

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64   `json:"id"`
	Reference  string  `json:"reference"`
	ChaletID   int64   `json:"chaletId"`
	GuestPhone string  `json:"guestPhone"`
	CheckIn    string  `json:"checkIn"`  // "2025-03-10"
	CheckOut   string  `json:"checkOut"` // "2025-03-13"
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`

	DepositAmount    *float64 `json:"depositAmount,omitempty"`
	PaymentReference *string  `json:"paymentReference,omitempty"`
	CommissionAmount *float64 `json:"commissionAmount,omitempty"`

	ConfirmedBy *int64  `json:"confirmedBy,omitempty"`
	ConfirmedAt *string `json:"confirmedAt,omitempty"` // ISO 8601 format
	CancelledBy *int64  `json:"cancelledBy,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// DepositSuggestionResponse подсказка депозита для формы подтверждения
type DepositSuggestionResponse struct {
	BookingID        int64   `json:"bookingId"`
	SuggestedDeposit float64 `json:"suggestedDeposit"`
	Source           string  `json:"source"` // nightly_price | total_price
	ChaletTitleAr    *string `json:"chaletTitleAr,omitempty"`
	ChaletTitleEn    *string `json:"chaletTitleEn,omitempty"`
}

const (
	DepositSourceNightlyPrice = "nightly_price"
	DepositSourceTotalPrice   = "total_price"
)

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:               b.ID,
		Reference:        b.Reference,
		ChaletID:         b.ChaletID,
		GuestPhone:       b.GuestPhone,
		CheckIn:          b.CheckIn.Format(domain.DateFormat),
		CheckOut:         b.CheckOut.Format(domain.DateFormat),
		Nights:           b.Nights(),
		TotalPrice:       b.TotalPrice,
		Status:           b.Status.String(),
		DepositAmount:    b.DepositAmount,
		PaymentReference: b.PaymentReference,
		CommissionAmount: b.CommissionAmount,
		ConfirmedBy:      b.ConfirmedBy,
		ConfirmedAt:      formatTime(b.ConfirmedAt),
		CancelledBy:      b.CancelledBy,
		CancelledAt:      formatTime(b.CancelledAt),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, limit, offset int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Limit:    limit,
		Offset:   offset,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
