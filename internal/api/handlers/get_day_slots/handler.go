package get_day_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getDaySlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_day_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

const (
	msgInvalidOwnerID  = "некорректный идентификатор владельца"
	msgInvalidDayID    = "некорректный параметр dayId"
	msgMissingSelector = "требуется ровно один из параметров: date или dayId"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD или DD/MM/YYYY"
	msgUnknownTimezone = "неизвестная таймзона"
	msgInvalidInput    = "некорректные параметры запроса"
	msgDayNotFound     = "день не найден"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/slots?date=YYYY-MM-DD или ?dayId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("GET /owners/{ownerId}/slots - Invalid owner id: %v", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	query := r.URL.Query()

	// Собираем селектор дня из query-параметров
	var datePtr *string
	if date := query.Get("date"); date != "" {
		datePtr = ptr.Ptr(date)
	}

	var dayIDPtr *int64
	if rawDayID := query.Get("dayId"); rawDayID != "" {
		dayID, err := strconv.ParseInt(rawDayID, 10, 64)
		if err != nil || dayID <= 0 {
			h.logger.Warn("GET /owners/%d/slots - Invalid dayId %q", ownerID, rawDayID)
			handlers.RespondBadRequest(w, msgInvalidDayID)
			return
		}
		dayIDPtr = ptr.Ptr(dayID)
	}

	selector, err := domain.NewDaySelector(datePtr, dayIDPtr)
	if err != nil {
		h.logger.Warn("GET /owners/%d/slots - Invalid selector: %v", ownerID, err)
		handlers.RespondBadRequest(w, msgMissingSelector)
		return
	}

	// Роль проставляет API gateway; query-параметр - запасной вариант
	roleValue := r.Header.Get("X-User-Role")
	if roleValue == "" {
		roleValue = query.Get("role")
	}

	req := &getDaySlots.Request{
		OwnerID:  ownerID,
		Selector: selector,
		Role:     domain.ParseCallerRole(roleValue),
		Timezone: query.Get("timezone"),
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrDayNotFound):
			h.logger.Warn("GET /owners/%d/slots - Day not found", ownerID)
			handlers.RespondNotFound(w, msgDayNotFound)

		case errors.Is(err, timeparse.ErrInvalidDateFormat):
			h.logger.Warn("GET /owners/%d/slots - Invalid date: %v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, timeparse.ErrUnknownTimezone):
			h.logger.Warn("GET /owners/%d/slots - Unknown timezone: %v", ownerID, err)
			handlers.RespondBadRequest(w, msgUnknownTimezone)

		case errors.Is(err, getDaySlots.ErrInvalidInput):
			h.logger.Warn("GET /owners/%d/slots - Invalid input: %v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /owners/%d/slots - Failed to get slots: %v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /owners/%d/slots - Returned %d slots", ownerID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
