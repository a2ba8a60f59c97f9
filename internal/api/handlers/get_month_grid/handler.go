package get_month_grid

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getMonthGrid "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_month_grid"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

const (
	msgInvalidOwnerID  = "некорректный идентификатор владельца"
	msgInvalidMonth    = "некорректный параметр month, ожидается YYYY-MM"
	msgUnknownTimezone = "неизвестная таймзона"
	msgInvalidInput    = "некорректные параметры запроса"

	monthFormat = "2006-01"
)

type Handler struct {
	useCase GetMonthGridUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/calendar?month=YYYY-MM&timezone=...&role=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil || ownerID <= 0 {
		h.logger.Warn("GET /owners/{ownerId}/calendar - Invalid owner id: %v", vars["ownerId"])
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	query := r.URL.Query()

	// Месяц обязателен
	month, err := time.Parse(monthFormat, query.Get("month"))
	if err != nil {
		h.logger.Warn("GET /owners/%d/calendar - Invalid month %q", ownerID, query.Get("month"))
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	// Роль проставляет API gateway; query-параметр - запасной вариант
	roleValue := r.Header.Get("X-User-Role")
	if roleValue == "" {
		roleValue = query.Get("role")
	}

	req := &getMonthGrid.Request{
		OwnerID:  ownerID,
		Year:     month.Year(),
		Month:    month.Month(),
		Role:     domain.ParseCallerRole(roleValue),
		Timezone: query.Get("timezone"),
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, timeparse.ErrUnknownTimezone):
			h.logger.Warn("GET /owners/%d/calendar - Unknown timezone: %v", ownerID, err)
			handlers.RespondBadRequest(w, msgUnknownTimezone)

		case errors.Is(err, getMonthGrid.ErrInvalidInput):
			h.logger.Warn("GET /owners/%d/calendar - Invalid input: %v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /owners/%d/calendar - Failed to build grid: %v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /owners/%d/calendar - Grid built: %d-%02d, %d cells",
		ownerID, result.Year, result.Month, len(result.Cells))
	handlers.RespondJSON(w, http.StatusOK, response)
}
