package update_entry

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	updateEntry "github.com/m04kA/SMC-ParkingService/internal/usecase/update_entry"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidEntryID     = "Identificador de entrada inválido"
	msgEntryNotFound      = "Entrada no encontrada"
	msgValidation         = "Datos de actualización inválidos"
	msgDuplicatePlate     = "El vehículo con esta placa ya se encuentra en el parqueadero"
	msgSpaceOccupied      = "El espacio asignado ya está ocupado"
	msgLotNotFound        = "Parqueadero no encontrado"
	msgCapacityExceeded   = "El parqueadero no tiene espacio disponible"
	msgControllerNotFound = "Controlador no encontrado"
)

type Handler struct {
	useCase UpdateEntryUseCase
	logger  Logger
}

func NewHandler(useCase UpdateEntryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/entradas/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entryID, ok := handlers.PathID(r, "id")
	if !ok {
		h.logger.Warn("PUT /entradas/{id} - Invalid entry ID")
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	var req UpdateEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /entradas/%d - Invalid request body: %v", entryID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(entryID))
	if err != nil {
		switch {
		case errors.Is(err, updateEntry.ErrEntryNotFound):
			h.logger.Warn("PUT /entradas/%d - Entry not found", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, updateEntry.ErrValidation):
			h.logger.Warn("PUT /entradas/%d - Validation failed: %v", entryID, err)
			handlers.RespondBadRequest(w, msgValidation)

		case errors.Is(err, updateEntry.ErrDuplicatePlate):
			h.logger.Warn("PUT /entradas/%d - Duplicate plate", entryID)
			handlers.RespondBadRequest(w, msgDuplicatePlate)

		case errors.Is(err, updateEntry.ErrSpaceOccupied):
			h.logger.Warn("PUT /entradas/%d - Space occupied", entryID)
			handlers.RespondBadRequest(w, msgSpaceOccupied)

		case errors.Is(err, updateEntry.ErrLotNotFound):
			h.logger.Warn("PUT /entradas/%d - Parking lot not found", entryID)
			handlers.RespondBadRequest(w, msgLotNotFound)

		case errors.Is(err, updateEntry.ErrCapacityExceeded):
			h.logger.Warn("PUT /entradas/%d - Capacity exceeded", entryID)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, updateEntry.ErrControllerNotFound):
			h.logger.Warn("PUT /entradas/%d - Controller not found", entryID)
			handlers.RespondBadRequest(w, msgControllerNotFound)

		default:
			h.logger.Error("PUT /entradas/%d - Failed to update entry: %v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /entradas/%d - Entry updated", entryID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
