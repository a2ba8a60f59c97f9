package add_custom_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	addCustomSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/add_custom_slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

const (
	msgInvalidDayID       = "некорректный идентификатор дня"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные время начала или конца слота"
	msgUnknownTimezone    = "неизвестная таймзона"
	msgDayNotFound        = "день не найден"
	msgSlotOverlap        = "слот пересекается с существующим слотом"
)

type Handler struct {
	useCase AddCustomSlotUseCase
	logger  Logger
}

func NewHandler(useCase AddCustomSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/days/{dayId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dayID, err := strconv.ParseInt(vars["dayId"], 10, 64)
	if err != nil || dayID <= 0 {
		h.logger.Warn("POST /days/{dayId}/slots - Invalid day id: %v", vars["dayId"])
		handlers.RespondBadRequest(w, msgInvalidDayID)
		return
	}

	var req AddSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /days/%d/slots - Invalid request body: %v", dayID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(dayID))
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, addCustomSlot.ErrDayNotFound):
			h.logger.Warn("POST /days/%d/slots - Day not found", dayID)
			handlers.RespondNotFound(w, msgDayNotFound)

		case errors.Is(err, addCustomSlot.ErrSlotOverlap):
			h.logger.Warn("POST /days/%d/slots - Slot overlap: %v", dayID, err)
			handlers.RespondConflict(w, msgSlotOverlap)

		case errors.Is(err, timeparse.ErrUnknownTimezone):
			h.logger.Warn("POST /days/%d/slots - Unknown timezone: %v", dayID, err)
			handlers.RespondBadRequest(w, msgUnknownTimezone)

		case errors.Is(err, addCustomSlot.ErrInvalidInput):
			h.logger.Warn("POST /days/%d/slots - Invalid input: %v", dayID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /days/%d/slots - Failed to add slot: %v", dayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /days/%d/slots - Slot created: slot_id=%d", dayID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
