package update_entry

import (
	"gopkg.in/guregu/null.v4"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/entries/models"
	updateEntry "github.com/m04kA/SMC-ParkingService/internal/usecase/update_entry"
)

// UpdateEntryRequest HTTP request model. Отсутствующие поля не меняются
type UpdateEntryRequest struct {
	Placa           null.String `json:"placa"`
	TipoVehiculo    null.String `json:"tipo_vehiculo"`
	ParqueaderoID   null.Int    `json:"parqueadero_id"`
	ControladorID   null.Int    `json:"controlador_id"`
	EspacioAsignado null.Int    `json:"espacio_asignado"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateEntryRequest) ToUseCaseRequest(entryID int64) *updateEntry.Request {
	upd := domain.EntryUpdate{
		Plate:        r.Placa.Ptr(),
		ParkingLotID: r.ParqueaderoID.Ptr(),
		ControllerID: r.ControladorID.Ptr(),
	}
	if r.TipoVehiculo.Valid {
		vt := domain.VehicleType(r.TipoVehiculo.String)
		upd.VehicleType = &vt
	}
	if r.EspacioAsignado.Valid {
		space := int(r.EspacioAsignado.Int64)
		upd.SpaceNumber = &space
	}

	return &updateEntry.Request{EntryID: entryID, Update: upd}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateEntry.Response) *models.EntryResponse {
	return models.FromDomainEntry(resp.Entry)
}
