package list_bookings

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	"github.com/m04kA/SMC-ChaletBookingService/internal/service/bookings/models"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// ListBookingsQuery query-параметры списка
// GET /api/v1/bookings?status=pending&chaletId=7&from=2025-03-01&to=2025-03-31&phone=+966500000001&limit=20&offset=0
type ListBookingsQuery struct {
	Status   *string `schema:"status"`
	ChaletID *int64  `schema:"chaletId"`
	From     *string `schema:"from"`
	To       *string `schema:"to"`
	Phone    *string `schema:"phone"`
	Limit    int     `schema:"limit"`
	Offset   int     `schema:"offset"`
}

// ParseQuery разбирает query-параметры запроса
func ParseQuery(values map[string][]string) (*ListBookingsQuery, error) {
	var q ListBookingsQuery
	if err := decoder.Decode(&q, values); err != nil {
		return nil, err
	}
	return &q, nil
}

// ToServiceRequest конвертирует query в модель сервиса
func (q *ListBookingsQuery) ToServiceRequest() (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Status:   q.Status,
		ChaletID: q.ChaletID,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}

	var err error
	if req.From, err = parseDate("from", q.From); err != nil {
		return nil, err
	}
	if req.To, err = parseDate("to", q.To); err != nil {
		return nil, err
	}

	if q.Phone != nil {
		phone := strings.TrimSpace(*q.Phone)
		if phone != "" {
			req.GuestPhone = &phone
		}
	}

	return req, nil
}

func parseDate(name string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &t, nil
}
