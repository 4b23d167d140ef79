package get_booked_dates

import (
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// BookedDatesResponse HTTP response model
type BookedDatesResponse struct {
	ChaletID int64    `json:"chaletId"`
	Dates    []string `json:"dates"` // ночи, занятые активными бронями, по возрастанию
}

func newBookedDatesResponse(chaletID int64, dates []time.Time) BookedDatesResponse {
	resp := BookedDatesResponse{
		ChaletID: chaletID,
		Dates:    make([]string, 0, len(dates)),
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format(domain.DateFormat))
	}
	return resp
}
