package run_auto_cancel_sweep

import "time"

// SweepResponse HTTP response model
type SweepResponse struct {
	AutoCancelled []int64   `json:"autoCancelled"`
	Count         int       `json:"count"`
	SweptAt       time.Time `json:"sweptAt"`
}
