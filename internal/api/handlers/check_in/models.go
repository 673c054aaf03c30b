package check_in

import (
	"gopkg.in/guregu/null.v4"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/entries/models"
	checkIn "github.com/m04kA/SMC-ParkingService/internal/usecase/check_in"
)

// CheckInRequest HTTP request model
type CheckInRequest struct {
	Placa           string   `json:"placa"`
	TipoVehiculo    string   `json:"tipo_vehiculo"`
	ParqueaderoID   int64    `json:"parqueadero_id"`
	ControladorID   null.Int `json:"controlador_id"` // для контролера берется из токена
	EspacioAsignado int      `json:"espacio_asignado"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckInRequest) ToUseCaseRequest(principal domain.Principal) *checkIn.Request {
	controllerID := r.ControladorID.ValueOrZero()
	if !r.ControladorID.Valid && principal.Role == domain.RoleController {
		controllerID = principal.ID
	}

	return &checkIn.Request{
		Plate:        r.Placa,
		VehicleType:  domain.VehicleType(r.TipoVehiculo),
		ParkingLotID: r.ParqueaderoID,
		ControllerID: controllerID,
		SpaceNumber:  r.EspacioAsignado,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkIn.Response) *models.EntryResponse {
	return models.FromDomainEntry(resp.Entry)
}
