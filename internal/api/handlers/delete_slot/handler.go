package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidSlotID = "некорректный идентификатор слота"
	msgSlotNotFound  = "слот не найден"
	msgSlotIsBooked  = "слот забронирован и не может быть удален"
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

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("DELETE /slots/{slotId} - Invalid slot id: %v", vars["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.DeleteSlot(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/%d - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, availabilityService.ErrSlotIsBooked):
			h.logger.Warn("DELETE /slots/%d - Slot is booked", slotID)
			handlers.RespondConflict(w, msgSlotIsBooked)

		default:
			h.logger.Error("DELETE /slots/%d - Failed to delete slot: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/%d - Slot deleted", slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
