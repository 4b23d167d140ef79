package domain

import "time"

// AutoCancelAfter сколько живёт неподтверждённое бронирование до автоотмены
const AutoCancelAfter = 4 * time.Hour

// Business validation constants
const (
	MinPhoneLength            = 7
	MaxPhoneLength            = 20
	MaxStayNights             = 365
	MaxPaymentReferenceLength = 100
	MaxListLimit              = 500
	ReferencePrefix           = "BK"
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
