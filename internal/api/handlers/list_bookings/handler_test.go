package list_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/events"
	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ChaletBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-ChaletBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/logger"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/metrics"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	repo := memory.NewRepository()
	seed := []struct {
		chalet  int64
		in, out string
		status  domain.BookingStatus
	}{
		{7, "2025-03-10", "2025-03-13", domain.StatusPending},
		{7, "2025-03-20", "2025-03-22", domain.StatusConfirmed},
		{8, "2025-03-11", "2025-03-12", domain.StatusPending},
		{7, "2025-04-01", "2025-04-03", domain.StatusCancelled},
	}
	for i, s := range seed {
		_, err := repo.Create(context.Background(), &domain.Booking{
			Reference:  domain.NewReference(),
			ChaletID:   s.chalet,
			GuestPhone: fmt.Sprintf("+96650000000%d", i),
			CheckIn:    day(s.in),
			CheckOut:   day(s.out),
			Status:     s.status,
		})
		require.NoError(t, err)
	}

	var m *metrics.Metrics
	svc := bookings.NewService(repo, nil, events.NopPublisher{}, m, bookings.Config{}, logger.Nop())
	return NewHandler(svc, logger.Nop())
}

func list(t *testing.T, h *Handler, query string) (*httptest.ResponseRecorder, *models.BookingListResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+query, nil))
	if w.Code != http.StatusOK {
		return w, nil
	}
	var resp models.BookingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, &resp
}

func TestHandler_Handle_Filters(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name  string
		query string
		ids   []int64
	}{
		{"all", "", []int64{1, 3, 2, 4}},
		{"status all", "?status=all", []int64{1, 3, 2, 4}},
		{"pending", "?status=pending", []int64{1, 3}},
		{"chalet", "?chaletId=7", []int64{1, 2, 4}},
		{"check-in window inclusive", "?from=2025-03-11&to=2025-03-20", []int64{3, 2}},
		{"phone", "?phone=%2B966500000002", []int64{3}},
		{"page", "?limit=2&offset=1", []int64{3, 2}},
		{"unknown keys ignored", "?chaletId=8&sort=desc", []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := list(t, h, tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			ids := make([]int64, 0, len(resp.Bookings))
			for _, b := range resp.Bookings {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestHandler_Handle_DefaultLimit(t *testing.T) {
	_, resp := list(t, newHandler(t), "")
	assert.Equal(t, bookings.DefaultListLimit, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
}

func TestHandler_Handle_BadQuery(t *testing.T) {
	h := newHandler(t)

	for _, q := range []string{
		"?chaletId=abc",
		"?limit=ten",
		"?from=01.03.2025",
		"?status=rejected",
		"?from=2025-03-20&to=2025-03-01",
		"?offset=-1",
	} {
		w, _ := list(t, h, q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}
