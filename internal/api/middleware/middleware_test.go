package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/metrics"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r.Context())
	role, _ := GetUserRole(r.Context())
	w.Header().Set("X-Seen-User", string(role))
	if userID == 42 {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusTeapot)
}

func TestAuth(t *testing.T) {
	h := Auth(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		userID string
		role   string
		want   int
	}{
		{"owner", "42", "owner", http.StatusOK},
		{"admin", "42", "admin", http.StatusOK},
		{"missing id", "", "owner", http.StatusUnauthorized},
		{"bad id", "abc", "owner", http.StatusUnauthorized},
		{"unknown role", "42", "guest", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set(HeaderUserID, tt.userID)
			r.Header.Set(HeaderUserRole, tt.role)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := Auth(RequireRole(domain.RoleAdmin)(http.HandlerFunc(echoUser)))

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set(HeaderUserID, "42")
	r.Header.Set(HeaderUserRole, "owner")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r.Header.Set(HeaderUserRole, "admin")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Header().Get("X-Seen-User"))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("test", reg)

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/bookings/1", "/bookings/2"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	count, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "both requests share one route label")
}
