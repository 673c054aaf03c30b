package check_out

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	checkOut "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
)

const (
	msgInvalidEntryID = "Identificador de entrada inválido"
	msgEntryNotFound  = "Entrada no encontrada"
	msgAlreadyClosed  = "La entrada ya tiene registrada la salida"
)

type Handler struct {
	useCase CheckOutUseCase
	logger  Logger
}

func NewHandler(useCase CheckOutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/entradas/{id}/salida и PUT /api/entradas/salida/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entryID, ok := handlers.PathID(r, "id")
	if !ok {
		h.logger.Warn("PUT /entradas/salida - Invalid entry ID")
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), entryID)
	if err != nil {
		switch {
		case errors.Is(err, checkOut.ErrInvalidInput):
			h.logger.Warn("PUT /entradas/salida - Invalid input: entry_id=%d", entryID)
			handlers.RespondBadRequest(w, msgInvalidEntryID)

		case errors.Is(err, checkOut.ErrEntryNotFound):
			h.logger.Warn("PUT /entradas/salida - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, checkOut.ErrAlreadyClosed):
			h.logger.Warn("PUT /entradas/salida - Entry already closed: entry_id=%d", entryID)
			handlers.RespondBadRequest(w, msgAlreadyClosed)

		default:
			h.logger.Error("PUT /entradas/salida - Failed to register exit: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.ChargeComputed {
		h.logger.Warn("PUT /entradas/salida - Exit registered without charge: entry_id=%d", entryID)
	} else {
		h.logger.Info("PUT /entradas/salida - Exit registered: entry_id=%d, amount=%.2f", entryID, result.Entry.ChargedAmount)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
