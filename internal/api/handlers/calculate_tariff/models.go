package calculate_tariff

import (
	"errors"
	"strings"
	"time"

	"gopkg.in/guregu/null.v4"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	tariffModels "github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
	calculateTariff "github.com/m04kA/SMC-ParkingService/internal/usecase/calculate_tariff"
)

var errInvalidTime = errors.New("invalid time format")

// Форматы времени без зоны трактуются в часовом поясе тарифов
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// CalculateTariffRequest HTTP request model
type CalculateTariffRequest struct {
	TipoVehiculo  string      `json:"tipo_vehiculo"`
	ParqueaderoID int64       `json:"parqueadero_id"`
	HoraIngreso   string      `json:"hora_ingreso"`
	HoraSalida    null.String `json:"hora_salida"`
	TipoCobro     null.String `json:"tipo_cobro"` // на расчет не влияет, способ начисления задает тариф
}

// CalculateTariffResponse HTTP response model
type CalculateTariffResponse struct {
	TarifaAplicada *tariffModels.TariffResponse `json:"tarifa_aplicada"`
	TiempoMinutos  int64                        `json:"tiempo_minutos"`
	TiempoHoras    int64                        `json:"tiempo_horas"`
	TiempoDias     int64                        `json:"tiempo_dias"`
	MontoTotal     float64                      `json:"monto_total"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Без hora_salida время въезда не разбирается: use case сам вернет ErrMissingCheckOut.
func (r *CalculateTariffRequest) ToUseCaseRequest(loc *time.Location) (*calculateTariff.Request, error) {
	req := &calculateTariff.Request{
		VehicleType:  domain.VehicleType(r.TipoVehiculo),
		ParkingLotID: r.ParqueaderoID,
	}

	if !r.HoraSalida.Valid || strings.TrimSpace(r.HoraSalida.String) == "" {
		return req, nil
	}

	checkOut, err := parseTime(r.HoraSalida.String, loc)
	if err != nil {
		return nil, err
	}
	req.CheckOut = &checkOut

	checkIn, err := parseTime(r.HoraIngreso, loc)
	if err != nil {
		return nil, err
	}
	req.CheckIn = checkIn

	return req, nil
}

func parseTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errInvalidTime
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculateTariff.Response) *CalculateTariffResponse {
	return &CalculateTariffResponse{
		TarifaAplicada: tariffModels.FromDomainTariff(resp.AppliedTariff),
		TiempoMinutos:  resp.ElapsedMinutes,
		TiempoHoras:    resp.ElapsedHours,
		TiempoDias:     resp.ElapsedDays,
		MontoTotal:     resp.TotalAmount,
	}
}
