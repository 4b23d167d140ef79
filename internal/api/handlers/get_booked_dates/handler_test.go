package get_booked_dates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ChaletBookingService/internal/service/availability"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/logger"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func serve(svc AvailabilityService, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/chalets/{chaletId}/booked-dates", NewHandler(svc, logger.Nop()).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func newService(t *testing.T) *availability.Service {
	t.Helper()
	repo := memory.NewRepository()
	for _, stay := range [][2]string{{"2025-03-10", "2025-03-13"}, {"2025-03-28", "2025-04-02"}} {
		_, err := repo.Create(context.Background(), &domain.Booking{
			Reference:  domain.NewReference(),
			ChaletID:   7,
			GuestPhone: "+966500000001",
			CheckIn:    day(stay[0]),
			CheckOut:   day(stay[1]),
			Status:     domain.StatusConfirmed,
		})
		require.NoError(t, err)
	}
	return availability.NewService(repo, logger.Nop())
}

func TestHandler_Handle(t *testing.T) {
	svc := newService(t)

	t.Run("all nights", func(t *testing.T) {
		w := serve(svc, "/chalets/7/booked-dates")
		require.Equal(t, http.StatusOK, w.Code)

		var resp BookedDatesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{
			"2025-03-10", "2025-03-11", "2025-03-12",
			"2025-03-28", "2025-03-29", "2025-03-30", "2025-03-31", "2025-04-01",
		}, resp.Dates)
	})

	t.Run("window", func(t *testing.T) {
		w := serve(svc, "/chalets/7/booked-dates?from=2025-04-01&to=2025-05-01")
		require.Equal(t, http.StatusOK, w.Code)

		var resp BookedDatesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"2025-04-01"}, resp.Dates)
	})

	t.Run("free chalet returns empty list", func(t *testing.T) {
		w := serve(svc, "/chalets/9/booked-dates")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"chaletId":9,"dates":[]}`, w.Body.String())
	})

	t.Run("bad window", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(svc, "/chalets/7/booked-dates?from=2025-04-01").Code)
		assert.Equal(t, http.StatusBadRequest, serve(svc, "/chalets/7/booked-dates?from=2025-04-01&to=2025-04-01").Code)
		assert.Equal(t, http.StatusBadRequest, serve(svc, "/chalets/7/booked-dates?from=april&to=2025-05-01").Code)
	})
}

type failingService struct{}

func (failingService) BookedDates(context.Context, int64, *domain.DateRange) ([]time.Time, error) {
	return nil, errors.New("connection refused")
}

func TestHandler_Handle_InternalError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, serve(failingService{}, "/chalets/7/booked-dates").Code)
}
