package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	"github.com/m04kA/SMC-ChaletBookingService/internal/service/availability"
)

const (
	msgInvalidChaletID = "некорректный ID шале"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange    = "дата выезда должна быть позже даты заезда"
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

// Handle GET /api/v1/chalets/{chaletId}/availability?checkIn=YYYY-MM-DD&checkOut=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chaletID, err := strconv.ParseInt(mux.Vars(r)["chaletId"], 10, 64)
	if err != nil || chaletID <= 0 {
		h.logger.Warn("GET /chalets/{id}/availability - Invalid chalet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChaletID)
		return
	}

	query := r.URL.Query()
	checkIn, errIn := time.Parse(domain.DateFormat, query.Get("checkIn"))
	checkOut, errOut := time.Parse(domain.DateFormat, query.Get("checkOut"))
	if errIn != nil || errOut != nil {
		h.logger.Warn("GET /chalets/{id}/availability - Invalid dates: checkIn=%q, checkOut=%q",
			query.Get("checkIn"), query.Get("checkOut"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	available, err := h.service.IsAvailable(r.Context(), chaletID, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /chalets/{id}/availability - Failed to check availability: chalet_id=%d, error=%v",
				chaletID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		ChaletID:  chaletID,
		CheckIn:   checkIn.Format(domain.DateFormat),
		CheckOut:  checkOut.Format(domain.DateFormat),
		Available: available,
	})
}
