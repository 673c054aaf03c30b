package models

import (
	"time"

	"gopkg.in/guregu/null.v4"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// TariffRequest запрос на создание или полную замену тарифа
type TariffRequest struct {
	Nombre        string      `json:"nombre"`
	Descripcion   null.String `json:"descripcion"`
	TipoCalculo   string      `json:"tipo_calculo"`
	TipoVehiculo  string      `json:"tipo_vehiculo"` // пусто = "todos"
	ParqueaderoID null.Int    `json:"parqueadero_id"` // null = любая парковка
	DiaSemana     string      `json:"dia_semana"`     // пусто = "Todos"
	HoraInicio    null.String `json:"hora_inicio"`    // "HH:MM"
	HoraFin       null.String `json:"hora_fin"`
	Precio        null.Float  `json:"precio"`
	Activo        null.Bool   `json:"activo"` // по умолчанию true
}

// TariffResponse тариф в формате клиента
type TariffResponse struct {
	ID                 int64       `json:"id"`
	Nombre             string      `json:"nombre"`
	Descripcion        null.String `json:"descripcion"`
	TipoCalculo        string      `json:"tipo_calculo"`
	TipoVehiculo       string      `json:"tipo_vehiculo"`
	ParqueaderoID      null.Int    `json:"parqueadero_id"`
	ParqueaderoNombre  null.String `json:"parqueadero_nombre"`
	DiaSemana          string      `json:"dia_semana"`
	HoraInicio         null.String `json:"hora_inicio"`
	HoraFin            null.String `json:"hora_fin"`
	Precio             float64     `json:"precio"`
	Activo             bool        `json:"activo"`
	FechaCreacion      time.Time   `json:"fecha_creacion"`
	FechaActualizacion null.Time   `json:"fecha_actualizacion"`
}

// FromDomainTariff конвертирует domain модель в DTO
func FromDomainTariff(t *domain.Tariff) *TariffResponse {
	if t == nil {
		return nil
	}

	resp := &TariffResponse{
		ID:                 t.ID,
		Nombre:             t.Name,
		Descripcion:        null.StringFromPtr(t.Description),
		TipoCalculo:        string(t.Mode),
		TipoVehiculo:       string(t.VehicleType),
		ParqueaderoID:      null.IntFromPtr(t.ParkingLotID),
		ParqueaderoNombre:  null.StringFromPtr(t.ParkingLotName),
		DiaSemana:          string(t.DayOfWeek),
		Precio:             t.Price,
		Activo:             t.Active,
		FechaCreacion:      t.CreatedAt,
		FechaActualizacion: null.TimeFromPtr(t.UpdatedAt),
	}
	if t.StartTime != nil {
		resp.HoraInicio = null.StringFrom(t.StartTime.String())
	}
	if t.EndTime != nil {
		resp.HoraFin = null.StringFrom(t.EndTime.String())
	}

	return resp
}

// FromDomainTariffs конвертирует список; пустой список сериализуется как []
func FromDomainTariffs(list []*domain.Tariff) []TariffResponse {
	result := make([]TariffResponse, 0, len(list))
	for _, t := range list {
		result = append(result, *FromDomainTariff(t))
	}
	return result
}
