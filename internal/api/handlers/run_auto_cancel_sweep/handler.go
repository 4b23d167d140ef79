package run_auto_cancel_sweep

import (
	"net/http"

	"github.com/m04kA/SMC-ChaletBookingService/internal/api/handlers"
)

type Handler struct {
	useCase      AutoCancelUseCase
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(useCase AutoCancelUseCase, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (h *Handler) WithTimeProvider(tp TimeProvider) *Handler {
	h.timeProvider = tp
	return h
}

// Handle POST /api/v1/admin/sweeps
// Внеочередной запуск автоотмены просроченных броней, время берется серверное
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	now := h.timeProvider.Now().UTC()

	ids, err := h.useCase.Execute(r.Context(), now)
	if err != nil {
		h.logger.Error("POST /admin/sweeps - Sweep failed after %d bookings: %v", len(ids), err)
		handlers.RespondInternalError(w)
		return
	}

	if ids == nil {
		ids = []int64{}
	}

	h.logger.Info("POST /admin/sweeps - Sweep finished: auto_cancelled=%d", len(ids))
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{
		AutoCancelled: ids,
		Count:         len(ids),
		SweptAt:       now,
	})
}
