package check_availability

import (
	"context"
	"encoding/json"
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

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	repo := memory.NewRepository()
	_, err := repo.Create(context.Background(), &domain.Booking{
		Reference:  domain.NewReference(),
		ChaletID:   7,
		GuestPhone: "+966500000001",
		CheckIn:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		Status:     domain.StatusPending,
	})
	require.NoError(t, err)

	h := NewHandler(availability.NewService(repo, logger.Nop()), logger.Nop())
	router := mux.NewRouter()
	router.HandleFunc("/chalets/{chaletId}/availability", h.Handle).Methods(http.MethodGet)
	return router
}

func TestHandler_Handle(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name      string
		url       string
		code      int
		available bool
	}{
		{"changeover day", "/chalets/7/availability?checkIn=2025-03-13&checkOut=2025-03-15", http.StatusOK, true},
		{"overlap", "/chalets/7/availability?checkIn=2025-03-12&checkOut=2025-03-14", http.StatusOK, false},
		{"empty range", "/chalets/7/availability?checkIn=2025-03-12&checkOut=2025-03-12", http.StatusBadRequest, false},
		{"bad date", "/chalets/7/availability?checkIn=12.03.2025&checkOut=2025-03-14", http.StatusBadRequest, false},
		{"bad chalet", "/chalets/x/availability?checkIn=2025-03-12&checkOut=2025-03-14", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			require.Equal(t, tt.code, w.Code)

			if tt.code == http.StatusOK {
				var resp AvailabilityResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.available, resp.Available)
				assert.Equal(t, int64(7), resp.ChaletID)
			}
		})
	}
}
