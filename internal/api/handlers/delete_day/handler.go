package delete_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidDayID      = "некорректный идентификатор дня"
	msgDayNotFound       = "день не найден"
	msgDayHasBookedSlots = "день содержит забронированные слоты и не может быть удален"
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

// Handle DELETE /api/v1/days/{dayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dayID, err := strconv.ParseInt(vars["dayId"], 10, 64)
	if err != nil || dayID <= 0 {
		h.logger.Warn("DELETE /days/{dayId} - Invalid day id: %v", vars["dayId"])
		handlers.RespondBadRequest(w, msgInvalidDayID)
		return
	}

	if err := h.service.DeleteDay(r.Context(), dayID); err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrDayNotFound):
			h.logger.Warn("DELETE /days/%d - Day not found", dayID)
			handlers.RespondNotFound(w, msgDayNotFound)

		case errors.Is(err, availabilityService.ErrDayHasBookedSlots):
			h.logger.Warn("DELETE /days/%d - Day has booked slots", dayID)
			handlers.RespondConflict(w, msgDayHasBookedSlots)

		default:
			h.logger.Error("DELETE /days/%d - Failed to delete day: %v", dayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /days/%d - Day deleted", dayID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
