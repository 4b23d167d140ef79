package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ChaletBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return w
}

const validBody = `{"chaletId":7,"checkIn":"2025-03-10","checkOut":"2025-03-13","guestPhone":"+966500000001","totalPrice":900}`

func TestHandler_Handle_Created(t *testing.T) {
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:         1,
		Reference:  "BK-0123456789AB",
		ChaletID:   7,
		GuestPhone: "+966500000001",
		CheckIn:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		Nights:     3,
		TotalPrice: 900,
		Status:     "pending",
		CreatedAt:  created,
	}}

	w := post(NewHandler(uc, logger.Nop()), validBody)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.ChaletID)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), uc.got.CheckOut)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10", resp.CheckIn)
	assert.Equal(t, "2025-03-13", resp.CheckOut)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, resp.Nights)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"malformed json", `{"chaletId":`, nil, http.StatusBadRequest},
		{"unknown field", `{"chaletId":7,"checkIn":"2025-03-10","checkOut":"2025-03-13","guestPhone":"1234567","slot":"10:00"}`, nil, http.StatusBadRequest},
		{"missing phone", `{"chaletId":7,"checkIn":"2025-03-10","checkOut":"2025-03-13"}`, nil, http.StatusBadRequest},
		{"negative price", `{"chaletId":7,"checkIn":"2025-03-10","checkOut":"2025-03-13","guestPhone":"1234567","totalPrice":-1}`, nil, http.StatusBadRequest},
		{"bad date", `{"chaletId":7,"checkIn":"10/03/2025","checkOut":"2025-03-13","guestPhone":"1234567"}`, nil, http.StatusBadRequest},
		{"overlap", validBody, fmt.Errorf("%w: chalet 7", createBooking.ErrDatesNotAvailable), http.StatusConflict},
		{"empty range", validBody, createBooking.ErrInvalidRange, http.StatusBadRequest},
		{"too long", validBody, createBooking.ErrStayTooLong, http.StatusBadRequest},
		{"phone", validBody, createBooking.ErrInvalidPhone, http.StatusBadRequest},
		{"internal", validBody, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(NewHandler(&stubUseCase{err: tt.err}, logger.Nop()), tt.body)
			assert.Equal(t, tt.code, w.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
