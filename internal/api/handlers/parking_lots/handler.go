package parking_lots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	lotsService "github.com/m04kA/SMC-ParkingService/internal/service/parkinglots"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkinglots/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidLotID       = "Identificador de parqueadero inválido"
	msgLotNotFound        = "Parqueadero no encontrado"
	msgLotInUse           = "El parqueadero tiene entradas o tarifas asociadas"
	msgInvalidLot         = "Datos de parqueadero inválidos: nombre y capacidad mayor que cero son requeridos"
	msgInvalidCriterion   = "Criterio de búsqueda inválido, use nombre, ubicacion, ciudad o capacidad"
	msgLotDeleted         = "Parqueadero eliminado"
)

// Handler CRUD и поиск парковок
type Handler struct {
	service ParkingLotsService
	logger  Logger
}

func NewHandler(service ParkingLotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/parqueaderos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ParkingLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parqueaderos - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lot, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /parqueaderos", err)
		return
	}

	h.logger.Info("POST /parqueaderos - Parking lot created: lot_id=%d", lot.ID)
	handlers.RespondJSON(w, http.StatusCreated, lot)
}

// Get GET /api/parqueaderos/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	lot, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /parqueaderos/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, lot)
}

// List GET /api/parqueaderos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /parqueaderos", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Search GET /api/parqueaderos/buscar/{criterio}/{valor}
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	list, err := h.service.Search(r.Context(), vars["criterio"], vars["valor"])
	if err != nil {
		if errors.Is(err, lotsService.ErrInvalidInput) {
			h.logger.Warn("GET /parqueaderos/buscar - Invalid criterion: %s", vars["criterio"])
			handlers.RespondBadRequest(w, msgInvalidCriterion)
			return
		}
		h.respondServiceError(w, "GET /parqueaderos/buscar", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Update PUT /api/parqueaderos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	var req models.ParkingLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /parqueaderos/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lot, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /parqueaderos/{id}", err)
		return
	}

	h.logger.Info("PUT /parqueaderos/%d - Parking lot updated", id)
	handlers.RespondJSON(w, http.StatusOK, lot)
}

// Delete DELETE /api/parqueaderos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /parqueaderos/{id}", err)
		return
	}

	h.logger.Info("DELETE /parqueaderos/%d - Parking lot deleted", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgLotDeleted})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, lotsService.ErrLotNotFound):
		h.logger.Warn("%s - Parking lot not found", route)
		handlers.RespondNotFound(w, msgLotNotFound)

	case errors.Is(err, lotsService.ErrLotInUse):
		h.logger.Warn("%s - Parking lot in use", route)
		handlers.RespondError(w, http.StatusConflict, msgLotInUse)

	case errors.Is(err, lotsService.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidLot)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
