package check_availability

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ChaletID  int64  `json:"chaletId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Available bool   `json:"available"`
}
