package delete_day

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

// fakeService возвращает заранее заданную ошибку
type fakeService struct {
	err    error
	called []int64
}

func (f *fakeService) DeleteDay(_ context.Context, dayID int64) error {
	f.called = append(f.called, dayID)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc *fakeService, path string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/days/{dayId}", handler.Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{}
	rec := doRequest(t, svc, "/api/v1/days/7")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{7}, svc.called)
}

func TestHandle_InvalidDayID(t *testing.T) {
	svc := &fakeService{}
	rec := doRequest(t, svc, "/api/v1/days/abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.called)
}

func TestHandle_NotFound(t *testing.T) {
	svc := &fakeService{err: availabilityService.ErrDayNotFound}
	rec := doRequest(t, svc, "/api/v1/days/7")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_BookedSlotsConflict(t *testing.T) {
	svc := &fakeService{err: availabilityService.ErrDayHasBookedSlots}
	rec := doRequest(t, svc, "/api/v1/days/7")

	require.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestHandle_InternalError(t *testing.T) {
	svc := &fakeService{err: availabilityService.ErrInternal}
	rec := doRequest(t, svc, "/api/v1/days/7")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
