package domain

import (
	"fmt"
	"time"
)

// DateRange полуоткрытый интервал дат [CheckIn, CheckOut)
// День выезда одного гостя может быть днём заезда другого
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateRange нормализует даты до полуночи UTC и проверяет, что выезд строго позже заезда
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{CheckIn: DateOnly(checkIn), CheckOut: DateOnly(checkOut)}
	if !r.CheckOut.After(r.CheckIn) {
		return DateRange{}, fmt.Errorf("%w: check-out %s must be after check-in %s",
			ErrInvalidRange, r.CheckOut.Format(DateFormat), r.CheckIn.Format(DateFormat))
	}
	return r, nil
}

// Overlaps: [a,b) и [c,d) пересекаются тогда и только тогда, когда a < d && c < b
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Nights количество ночей
func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Days перечисляет дни интервала, день выезда не входит
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Clip ограничивает интервал окном [from, to); ok=false, если пересечения нет
func (r DateRange) Clip(from, to time.Time) (DateRange, bool) {
	clipped := r
	if from.After(clipped.CheckIn) {
		clipped.CheckIn = from
	}
	if to.Before(clipped.CheckOut) {
		clipped.CheckOut = to
	}
	return clipped, clipped.CheckIn.Before(clipped.CheckOut)
}

// DateOnly отбрасывает время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
