package models

import (
	"gopkg.in/guregu/null.v4"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// LotRevenueResponse доходы парковки
type LotRevenueResponse struct {
	ParqueaderoID       int64     `json:"parqueadero_id"`
	Parqueadero         string    `json:"parqueadero"`
	TotalEntradas       int       `json:"total_entradas"`
	IngresosTotales     float64   `json:"ingresos_totales"`
	IngresoPromedio     float64   `json:"ingreso_promedio"`
	EntradasActivas     int       `json:"entradas_activas"`
	EntradasCompletadas int       `json:"entradas_completadas"`
	PrimeraEntrada      null.Time `json:"primera_entrada"`
	UltimaSalida        null.Time `json:"ultima_salida"`
}

// DailyRevenueResponse доход за день
type DailyRevenueResponse struct {
	Fecha      string  `json:"fecha"` // YYYY-MM-DD
	Entradas   int     `json:"entradas"`
	IngresoDia float64 `json:"ingresos_dia"`
}

// VehicleRevenueResponse доход по типу ТС
type VehicleRevenueResponse struct {
	TipoVehiculo string  `json:"tipo_vehiculo"`
	Cantidad     int     `json:"cantidad"`
	Ingresos     float64 `json:"ingresos"`
	Promedio     float64 `json:"promedio"`
}

// OccupancyResponse текущая занятость парковки
type OccupancyResponse struct {
	ParqueaderoID       int64   `json:"parqueadero_id"`
	Parqueadero         string  `json:"parqueadero"`
	Capacidad           int     `json:"capacidad"`
	Ocupados            int     `json:"ocupados"`
	Disponibles         int     `json:"disponibles"`
	PorcentajeOcupacion float64 `json:"porcentaje_ocupacion"`
}

// FromDomainLotRevenue конвертирует domain модель в DTO
func FromDomainLotRevenue(r *domain.LotRevenue) *LotRevenueResponse {
	return &LotRevenueResponse{
		ParqueaderoID:       r.ParkingLotID,
		Parqueadero:         r.Name,
		TotalEntradas:       r.TotalEntries,
		IngresosTotales:     domain.RoundMoney(r.TotalRevenue),
		IngresoPromedio:     domain.RoundMoney(r.AverageRevenue),
		EntradasActivas:     r.OpenEntries,
		EntradasCompletadas: r.ClosedEntries,
		PrimeraEntrada:      null.TimeFromPtr(r.FirstEntry),
		UltimaSalida:        null.TimeFromPtr(r.LastExit),
	}
}

// FromDomainDailyRevenue конвертирует ряд по дням
func FromDomainDailyRevenue(list []domain.DailyRevenue) []DailyRevenueResponse {
	result := make([]DailyRevenueResponse, 0, len(list))
	for _, d := range list {
		result = append(result, DailyRevenueResponse{
			Fecha:      d.Date.Format(domain.DateFormat),
			Entradas:   d.Entries,
			IngresoDia: domain.RoundMoney(d.Revenue),
		})
	}
	return result
}

// FromDomainVehicleRevenue конвертирует разбивку по типам ТС
func FromDomainVehicleRevenue(list []domain.VehicleRevenue) []VehicleRevenueResponse {
	result := make([]VehicleRevenueResponse, 0, len(list))
	for _, v := range list {
		result = append(result, VehicleRevenueResponse{
			TipoVehiculo: string(v.VehicleType),
			Cantidad:     v.Count,
			Ingresos:     domain.RoundMoney(v.Revenue),
			Promedio:     domain.RoundMoney(v.Average),
		})
	}
	return result
}

// FromDomainOccupancy конвертирует занятость парковок
func FromDomainOccupancy(list []domain.LotOccupancy) []OccupancyResponse {
	result := make([]OccupancyResponse, 0, len(list))
	for i := range list {
		o := &list[i]
		result = append(result, OccupancyResponse{
			ParqueaderoID:       o.ParkingLotID,
			Parqueadero:         o.Name,
			Capacidad:           o.Capacity,
			Ocupados:            o.Occupied,
			Disponibles:         o.Available(),
			PorcentajeOcupacion: o.OccupancyRate(),
		})
	}
	return result
}
