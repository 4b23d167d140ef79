package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

type sample struct {
	Phone string  `json:"phone" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

func TestDecodeAndValidate(t *testing.T) {
	var s sample
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"+966500000001","price":10}`))
	require.NoError(t, DecodeAndValidate(r, &s))
	assert.Equal(t, "+966500000001", s.Phone)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price":-1}`))
	err := DecodeAndValidate(r, &sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Phone: required")
	assert.Contains(t, err.Error(), "Price: gte")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"1","extra":true}`))
	assert.Error(t, DecodeJSON(r, &sample{}))
}

func TestRespondInvalidTransition(t *testing.T) {
	w := httptest.NewRecorder()
	RespondInvalidTransition(w, &domain.InvalidTransitionError{
		BookingID: 1,
		Current:   domain.StatusCancelled,
		Requested: domain.StatusConfirmed,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body InvalidTransitionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.CurrentStatus)
	assert.Equal(t, "confirmed", body.RequestedStatus)
}
