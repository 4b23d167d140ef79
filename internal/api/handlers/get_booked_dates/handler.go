package get_booked_dates

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

const (
	msgInvalidChaletID = "некорректный ID шале"
	msgInvalidWindow   = "период задается парой from и to в формате YYYY-MM-DD, to позже from"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/chalets/{chaletId}/booked-dates?from=YYYY-MM-DD&to=YYYY-MM-DD
// Без from и to возвращаются все занятые ночи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chaletID, err := strconv.ParseInt(mux.Vars(r)["chaletId"], 10, 64)
	if err != nil || chaletID <= 0 {
		h.logger.Warn("GET /chalets/{id}/booked-dates - Invalid chalet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChaletID)
		return
	}

	window, err := parseWindow(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /chalets/{id}/booked-dates - Invalid window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	dates, err := h.service.BookedDates(r.Context(), chaletID, window)
	if err != nil {
		h.logger.Error("GET /chalets/{id}/booked-dates - Failed to get booked dates: chalet_id=%d, error=%v",
			chaletID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newBookedDatesResponse(chaletID, dates))
}

func parseWindow(from, to string) (*domain.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, errors.New("from and to must be set together")
	}

	start, err := time.Parse(domain.DateFormat, from)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(domain.DateFormat, to)
	if err != nil {
		return nil, err
	}

	window, err := domain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return &window, nil
}
