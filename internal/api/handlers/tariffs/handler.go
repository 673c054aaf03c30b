package tariffs

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	tariffsService "github.com/m04kA/SMC-ParkingService/internal/service/tariffs"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidTariffID    = "Identificador de tarifa inválido"
	msgTariffNotFound     = "Tarifa no encontrada"
	msgLotNotFound        = "Parqueadero no encontrado"
	msgInvalidTariff      = "Datos de tarifa inválidos"
	msgInvalidCriterion   = "Criterio de búsqueda inválido, use nombre, tipo_calculo o tipo_vehiculo"
	msgTariffCreated      = "Tarifa creada exitosamente"
	msgTariffDeleted      = "Tarifa eliminada"
)

// Handler CRUD и поиск тарифов
type Handler struct {
	service TariffsService
	logger  Logger
}

func NewHandler(service TariffsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/tarifas
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TariffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tarifas - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tariff, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /tarifas", err)
		return
	}

	h.logger.Info("POST /tarifas - Tariff created: tariff_id=%d", tariff.ID)
	handlers.RespondJSON(w, http.StatusCreated, TariffCreatedResponse{Message: msgTariffCreated, Tarifa: tariff})
}

// Get GET /api/tarifas/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidTariffID)
		return
	}

	tariff, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /tarifas/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tariff)
}

// List GET /api/tarifas
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /tarifas", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Search GET /api/tarifas/buscar/{criterio}/{valor}
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	list, err := h.service.Search(r.Context(), vars["criterio"], vars["valor"])
	if err != nil {
		if errors.Is(err, tariffsService.ErrInvalidInput) {
			h.logger.Warn("GET /tarifas/buscar - Invalid criterion: %s", vars["criterio"])
			handlers.RespondBadRequest(w, msgInvalidCriterion)
			return
		}
		h.respondServiceError(w, "GET /tarifas/buscar", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Update PUT /api/tarifas/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidTariffID)
		return
	}

	var req models.TariffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tarifas/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tariff, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /tarifas/{id}", err)
		return
	}

	h.logger.Info("PUT /tarifas/%d - Tariff updated", id)
	handlers.RespondJSON(w, http.StatusOK, tariff)
}

// Delete DELETE /api/tarifas/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidTariffID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /tarifas/{id}", err)
		return
	}

	h.logger.Info("DELETE /tarifas/%d - Tariff deleted", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgTariffDeleted})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, tariffsService.ErrTariffNotFound):
		h.logger.Warn("%s - Tariff not found", route)
		handlers.RespondNotFound(w, msgTariffNotFound)

	case errors.Is(err, tariffsService.ErrLotNotFound):
		h.logger.Warn("%s - Parking lot not found", route)
		handlers.RespondBadRequest(w, msgLotNotFound)

	case errors.Is(err, tariffsService.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTariff)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
