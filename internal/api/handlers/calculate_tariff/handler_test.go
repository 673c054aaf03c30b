package calculate_tariff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	calculateTariff "github.com/m04kA/SMC-ParkingService/internal/usecase/calculate_tariff"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	tariffs []*domain.Tariff
}

func (f *fakeRepo) FindCandidates(context.Context, domain.TariffQuery) ([]*domain.Tariff, error) {
	return f.tariffs, nil
}

func newHandler(tariffs ...*domain.Tariff) *Handler {
	uc := calculateTariff.NewUseCase(&fakeRepo{tariffs: tariffs}, time.UTC, nopLogger{})
	return NewHandler(uc, time.UTC, nopLogger{})
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/tarifas/calcular", strings.NewReader(body)))
	return rec
}

func motoHourly() *domain.Tariff {
	return &domain.Tariff{
		ID:          1,
		Name:        "Moto hora",
		Mode:        domain.ModePerHour,
		VehicleType: domain.VehicleMotorcycle,
		DayOfWeek:   domain.AnyDay,
		Price:       1000,
		Active:      true,
	}
}

func TestHandle_Calculates(t *testing.T) {
	rec := post(newHandler(motoHourly()),
		`{"tipo_vehiculo":"moto","parqueadero_id":1,"hora_ingreso":"2025-03-10T10:00:00Z","hora_salida":"2025-03-10T12:30:01Z"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TarifaAplicada struct {
			ID int64 `json:"id"`
		} `json:"tarifa_aplicada"`
		TiempoMinutos int64   `json:"tiempo_minutos"`
		TiempoHoras   int64   `json:"tiempo_horas"`
		TiempoDias    int64   `json:"tiempo_dias"`
		MontoTotal    float64 `json:"monto_total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body.TarifaAplicada.ID)
	assert.EqualValues(t, 151, body.TiempoMinutos)
	assert.EqualValues(t, 3, body.TiempoHoras)
	assert.EqualValues(t, 1, body.TiempoDias)
	assert.Equal(t, 3000.0, body.MontoTotal)
}

func TestHandle_LocalTimeIgnoresRequestedMode(t *testing.T) {
	for _, mode := range []string{"por_minuto", "por_semana"} {
		t.Run(mode, func(t *testing.T) {
			rec := post(newHandler(motoHourly()),
				`{"tipo_vehiculo":"moto","parqueadero_id":1,"hora_ingreso":"2025-03-10T10:00","hora_salida":"2025-03-10T10:45","tipo_cobro":"`+mode+`"}`)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"monto_total":1000`)
			assert.Contains(t, rec.Body.String(), `"tiempo_minutos":45`)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{
			name: "missing checkout",
			body: `{"tipo_vehiculo":"moto","parqueadero_id":1,"hora_ingreso":"2025-03-10T10:00:00Z"}`,
			msg:  msgMissingCheckOut,
		},
		{
			name: "missing checkout wins over bad check-in",
			body: `{"tipo_vehiculo":"moto","parqueadero_id":1,"hora_ingreso":"ayer","hora_salida":null}`,
			msg:  msgMissingCheckOut,
		},
		{
			name: "bad time",
			body: `{"tipo_vehiculo":"moto","parqueadero_id":1,"hora_ingreso":"ayer","hora_salida":"2025-03-10T12:00:00Z"}`,
			msg:  msgInvalidTime,
		},
		{
			name: "no rate",
			body: `{"tipo_vehiculo":"camion","parqueadero_id":1,"hora_ingreso":"2025-03-10T10:00:00Z","hora_salida":"2025-03-10T12:00:00Z"}`,
			msg:  msgNoApplicableRate,
		},
		{
			name: "bad vehicle",
			body: `{"tipo_vehiculo":"bicicleta","parqueadero_id":1,"hora_ingreso":"2025-03-10T10:00:00Z","hora_salida":"2025-03-10T12:00:00Z"}`,
			msg:  msgInvalidInput,
		},
		{
			name: "bad body",
			body: `nope`,
			msg:  msgInvalidRequestBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newHandler(motoHourly()), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.msg, resp["message"])
		})
	}
}
