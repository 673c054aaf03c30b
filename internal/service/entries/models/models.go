package models

import (
	"time"

	"gopkg.in/guregu/null.v4"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// EntryResponse запись о въезде в формате клиента
type EntryResponse struct {
	ID                 int64     `json:"id"`
	Placa              string    `json:"placa"`
	TipoVehiculo       string    `json:"tipo_vehiculo"`
	ParqueaderoID      int64     `json:"parqueadero_id"`
	ControladorID      int64     `json:"controlador_id"`
	EspacioAsignado    int       `json:"espacio_asignado"`
	HoraIngreso        time.Time `json:"hora_ingreso"`
	HoraSalida         null.Time `json:"hora_salida"` // null, пока запись открыта
	Estado             string    `json:"estado"`
	MontoCobrado       float64   `json:"monto_cobrado"`
	Parqueadero        string    `json:"parqueadero,omitempty"`
	Controlador        string    `json:"controlador,omitempty"`
	FechaCreacion      time.Time `json:"fecha_creacion"`
	FechaActualizacion time.Time `json:"fecha_actualizacion"`
}

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.Entry) *EntryResponse {
	if e == nil {
		return nil
	}

	return &EntryResponse{
		ID:                 e.ID,
		Placa:              e.Plate,
		TipoVehiculo:       string(e.VehicleType),
		ParqueaderoID:      e.ParkingLotID,
		ControladorID:      e.ControllerID,
		EspacioAsignado:    e.SpaceNumber,
		HoraIngreso:        e.CheckInTime,
		HoraSalida:         null.TimeFromPtr(e.CheckOutTime),
		Estado:             string(e.Status),
		MontoCobrado:       e.ChargedAmount,
		Parqueadero:        e.ParkingLotName,
		Controlador:        e.ControllerName,
		FechaCreacion:      e.CreatedAt,
		FechaActualizacion: e.UpdatedAt,
	}
}

// FromDomainEntries конвертирует список; пустой список сериализуется как []
func FromDomainEntries(entries []*domain.Entry) []EntryResponse {
	result := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, *FromDomainEntry(e))
	}
	return result
}
