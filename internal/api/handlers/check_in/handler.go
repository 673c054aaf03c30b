package check_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	checkIn "github.com/m04kA/SMC-ParkingService/internal/usecase/check_in"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgValidation         = "Datos de entrada inválidos: placa, tipo de vehículo, parqueadero, controlador y espacio son requeridos"
	msgDuplicatePlate     = "El vehículo con esta placa ya se encuentra en el parqueadero"
	msgSpaceOccupied      = "El espacio asignado ya está ocupado"
	msgLotNotFound        = "Parqueadero no encontrado"
	msgCapacityExceeded   = "El parqueadero no tiene espacio disponible"
	msgControllerNotFound = "Controlador no encontrado"
)

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/entradas
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /entradas - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	principal, _ := middleware.GetPrincipal(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal))
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrValidation):
			h.logger.Warn("POST /entradas - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgValidation)

		case errors.Is(err, checkIn.ErrDuplicatePlate):
			h.logger.Warn("POST /entradas - Duplicate plate: plate=%s", req.Placa)
			handlers.RespondBadRequest(w, msgDuplicatePlate)

		case errors.Is(err, checkIn.ErrSpaceOccupied):
			h.logger.Warn("POST /entradas - Space occupied: lot_id=%d, space=%d", req.ParqueaderoID, req.EspacioAsignado)
			handlers.RespondBadRequest(w, msgSpaceOccupied)

		case errors.Is(err, checkIn.ErrLotNotFound):
			h.logger.Warn("POST /entradas - Parking lot not found: lot_id=%d", req.ParqueaderoID)
			handlers.RespondBadRequest(w, msgLotNotFound)

		case errors.Is(err, checkIn.ErrCapacityExceeded):
			h.logger.Warn("POST /entradas - Capacity exceeded: lot_id=%d, space=%d", req.ParqueaderoID, req.EspacioAsignado)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, checkIn.ErrControllerNotFound):
			h.logger.Warn("POST /entradas - Controller not found: %v", err)
			handlers.RespondBadRequest(w, msgControllerNotFound)

		default:
			h.logger.Error("POST /entradas - Failed to register entry: plate=%s, lot_id=%d, error=%v",
				req.Placa, req.ParqueaderoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /entradas - Entry registered: entry_id=%d, plate=%s, lot_id=%d",
		result.Entry.ID, result.Entry.Plate, result.Entry.ParkingLotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
