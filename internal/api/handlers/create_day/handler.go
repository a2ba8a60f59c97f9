package create_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/slotgen"
	createDay "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_day"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

const (
	msgInvalidOwnerID     = "некорректный идентификатор владельца"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD или DD/MM/YYYY"
	msgUnknownTimezone    = "неизвестная таймзона"
	msgInvalidWindow      = "некорректное рабочее окно или параметры слотов"
	msgDayHasBookedSlots  = "день содержит забронированные слоты и не может быть пересоздан"
)

type Handler struct {
	useCase CreateDayUseCase
	logger  Logger
}

func NewHandler(useCase CreateDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/owners/{ownerId}/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("POST /owners/{ownerId}/days - Invalid owner id: %v", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	var req CreateDaysRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /owners/%d/days - Invalid request body: %v", ownerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(ownerID))
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createDay.ErrDayHasBookedSlots):
			h.logger.Warn("POST /owners/%d/days - Day has booked slots", ownerID)
			handlers.RespondConflict(w, msgDayHasBookedSlots)

		case errors.Is(err, timeparse.ErrInvalidDateFormat):
			h.logger.Warn("POST /owners/%d/days - Invalid date: %v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, timeparse.ErrUnknownTimezone):
			h.logger.Warn("POST /owners/%d/days - Unknown timezone: %v", ownerID, err)
			handlers.RespondBadRequest(w, msgUnknownTimezone)

		case errors.Is(err, slotgen.ErrInvalidDuration),
			errors.Is(err, slotgen.ErrInvalidBreak),
			errors.Is(err, slotgen.ErrInvalidWindow),
			errors.Is(err, createDay.ErrInvalidInput):
			h.logger.Warn("POST /owners/%d/days - Invalid input: %v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("POST /owners/%d/days - Failed to create days: %v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /owners/%d/days - Processed %d dates", ownerID, len(result.Results))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
