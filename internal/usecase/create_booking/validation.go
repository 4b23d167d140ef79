package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает интервал проживания
func validateRequest(req *Request) (domain.DateRange, error) {
	if req.ChaletID <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: chaletID must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return domain.DateRange{}, fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	stay, err := domain.NewDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	if stay.Nights() > domain.MaxStayNights {
		return domain.DateRange{}, fmt.Errorf("%w: %d nights, max %d", ErrStayTooLong, stay.Nights(), domain.MaxStayNights)
	}

	if req.TotalPrice < 0 {
		return domain.DateRange{}, fmt.Errorf("%w: totalPrice must not be negative", ErrInvalidInput)
	}

	phone, err := normalizePhone(req.GuestPhone)
	if err != nil {
		return domain.DateRange{}, err
	}
	req.GuestPhone = phone

	return stay, nil
}

// normalizePhone убирает пробелы, дефисы и скобки; допускается ведущий "+"
func normalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		return "", fmt.Errorf("%w: phone is required", ErrInvalidPhone)
	}

	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidPhone, r)
		}
	}

	normalized := b.String()
	digits := len(strings.TrimPrefix(normalized, "+"))
	if digits < domain.MinPhoneLength || digits > domain.MaxPhoneLength {
		return "", fmt.Errorf("%w: expected %d-%d digits, got %d",
			ErrInvalidPhone, domain.MinPhoneLength, domain.MaxPhoneLength, digits)
	}

	return normalized, nil
}

// findConflict возвращает первое активное бронирование, пересекающее интервал
func findConflict(stay domain.DateRange, bookings []*domain.Booking) *domain.Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.Range().Overlaps(stay) {
			return b
		}
	}
	return nil
}
