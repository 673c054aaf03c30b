package calculate_tariff

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	calculateTariff "github.com/m04kA/SMC-ParkingService/internal/usecase/calculate_tariff"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidTime        = "Formato de fecha inválido, use ISO 8601 (2006-01-02T15:04:05)"
	msgMissingCheckOut    = "No se puede calcular tarifa sin hora de salida"
	msgNoApplicableRate   = "No se encontró una tarifa aplicable"
	msgInvalidInput       = "Datos inválidos: tipo de vehículo, parqueadero y hora de ingreso son requeridos"
)

type Handler struct {
	useCase  CalculateTariffUseCase
	location *time.Location
	logger   Logger
}

// NewHandler location - часовой пояс для дат без смещения
func NewHandler(useCase CalculateTariffUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/tarifas/calcular
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CalculateTariffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tarifas/calcular - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /tarifas/calcular - Failed to parse times: ingreso=%q, salida=%q", req.HoraIngreso, req.HoraSalida.String)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, calculateTariff.ErrMissingCheckOut):
			h.logger.Warn("POST /tarifas/calcular - Missing check-out time")
			handlers.RespondBadRequest(w, msgMissingCheckOut)

		case errors.Is(err, calculateTariff.ErrNoApplicableRate):
			h.logger.Warn("POST /tarifas/calcular - No applicable rate: vehicle=%s, lot_id=%d", req.TipoVehiculo, req.ParqueaderoID)
			handlers.RespondBadRequest(w, msgNoApplicableRate)

		case errors.Is(err, calculateTariff.ErrInvalidInput):
			h.logger.Warn("POST /tarifas/calcular - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tarifas/calcular - Failed to calculate tariff: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tarifas/calcular - tariff_id=%d, amount=%.2f", result.AppliedTariff.ID, result.TotalAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
