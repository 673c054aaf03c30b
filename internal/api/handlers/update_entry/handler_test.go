package update_entry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	updateEntry "github.com/m04kA/SMC-ParkingService/internal/usecase/update_entry"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *updateEntry.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateEntry.Request) (*updateEntry.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	entry := &domain.Entry{ID: req.EntryID, Plate: "ABC123", Status: domain.EntryOpen}
	req.Update.ApplyTo(entry)
	return &updateEntry.Response{Entry: entry}, nil
}

func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/entradas/{id}", h.Handle).Methods(http.MethodPut)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, strings.NewReader(body)))
	return rec
}

func TestHandle_PartialUpdate(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(NewHandler(uc, nopLogger{}), "/api/entradas/3", `{"espacio_asignado":12,"tipo_vehiculo":"camion"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.EqualValues(t, 3, uc.got.EntryID)
	assert.Nil(t, uc.got.Update.Plate)
	assert.Nil(t, uc.got.Update.ParkingLotID)
	require.NotNil(t, uc.got.Update.SpaceNumber)
	assert.Equal(t, 12, *uc.got.Update.SpaceNumber)
	require.NotNil(t, uc.got.Update.VehicleType)
	assert.Equal(t, domain.VehicleTruck, *uc.got.Update.VehicleType)
	assert.Contains(t, rec.Body.String(), `"espacio_asignado":12`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		err    error
		status int
	}{
		{name: "bad id", path: "/api/entradas/0", body: `{}`, status: http.StatusBadRequest},
		{name: "bad body", path: "/api/entradas/1", body: `[`, status: http.StatusBadRequest},
		{name: "not found", path: "/api/entradas/1", body: `{"placa":"X1"}`, err: updateEntry.ErrEntryNotFound, status: http.StatusNotFound},
		{name: "empty update", path: "/api/entradas/1", body: `{}`, err: updateEntry.ErrValidation, status: http.StatusBadRequest},
		{name: "duplicate", path: "/api/entradas/1", body: `{"placa":"X1"}`, err: updateEntry.ErrDuplicatePlate, status: http.StatusBadRequest},
		{name: "space", path: "/api/entradas/1", body: `{"espacio_asignado":2}`, err: updateEntry.ErrSpaceOccupied, status: http.StatusBadRequest},
		{name: "internal", path: "/api/entradas/1", body: `{"placa":"X1"}`, err: updateEntry.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}), tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
