package check_out

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	checkOut "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *checkOut.Response
	err  error
	got  int64
}

func (f *fakeUseCase) Execute(_ context.Context, entryID int64) (*checkOut.Response, error) {
	f.got = entryID
	return f.resp, f.err
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/entradas/{id}/salida", h.Handle).Methods(http.MethodPut)
	r.HandleFunc("/api/entradas/salida/{id}", h.Handle).Methods(http.MethodPut)
	return r
}

func closedEntry() *domain.Entry {
	out := time.Date(2025, 3, 10, 12, 30, 1, 0, time.UTC)
	return &domain.Entry{
		ID:            5,
		Plate:         "ABC123",
		VehicleType:   domain.VehicleMotorcycle,
		ParkingLotID:  1,
		CheckInTime:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		CheckOutTime:  &out,
		Status:        domain.EntryClosed,
		ChargedAmount: 3000,
	}
}

func TestHandle_BothRoutes(t *testing.T) {
	for _, path := range []string{"/api/entradas/5/salida", "/api/entradas/salida/5"} {
		uc := &fakeUseCase{resp: &checkOut.Response{
			Entry:          closedEntry(),
			ChargeComputed: true,
			Message:        "Salida registrada. Monto cobrado: 3000.00",
		}}
		rec := httptest.NewRecorder()

		newRouter(NewHandler(uc, nopLogger{})).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, nil))

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.EqualValues(t, 5, uc.got)

		var body struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Data    struct {
				Estado       string  `json:"estado"`
				MontoCobrado float64 `json:"monto_cobrado"`
				HoraSalida   *string `json:"hora_salida"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "Salida registrada. Monto cobrado: 3000.00", body.Message)
		assert.Equal(t, "cerrada", body.Data.Estado)
		assert.Equal(t, 3000.0, body.Data.MontoCobrado)
		assert.NotNil(t, body.Data.HoraSalida)
	}
}

func TestHandle_WithoutCharge(t *testing.T) {
	entry := closedEntry()
	entry.ChargedAmount = 0
	uc := &fakeUseCase{resp: &checkOut.Response{Entry: entry, Message: "Salida registrada sin cobro: no se encontró una tarifa aplicable"}}
	rec := httptest.NewRecorder()

	newRouter(NewHandler(uc, nopLogger{})).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/entradas/5/salida", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sin cobro")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "bad id", path: "/api/entradas/abc/salida", status: http.StatusBadRequest},
		{name: "not found", path: "/api/entradas/5/salida", err: checkOut.ErrEntryNotFound, status: http.StatusNotFound},
		{name: "already closed", path: "/api/entradas/5/salida", err: checkOut.ErrAlreadyClosed, status: http.StatusBadRequest},
		{name: "internal", path: "/api/entradas/5/salida", err: checkOut.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})).
				ServeHTTP(rec, httptest.NewRequest(http.MethodPut, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
