package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	controllersService "github.com/m04kA/SMC-ParkingService/internal/service/controllers"
	"github.com/m04kA/SMC-ParkingService/internal/service/controllers/models"
)

const (
	msgInvalidRequestBody  = "Cuerpo de la solicitud inválido"
	msgInvalidControllerID = "Identificador de controlador inválido"
	msgControllerNotFound  = "Controlador no encontrado"
	msgDuplicateID         = "Ya existe un controlador con esa identificación"
	msgControllerInUse     = "El controlador tiene entradas registradas"
	msgInvalidController   = "Datos de controlador inválidos: nombre e identificación son requeridos, rol operador o supervisor"
	msgInvalidCriterion    = "Criterio de búsqueda inválido, use nombre, identificacion, rol o activo"
	msgControllerDeleted   = "Controlador eliminado correctamente"
)

// DeleteResponse ответ на удаление с удаленной записью
type DeleteResponse struct {
	Message string                     `json:"message"`
	Data    *models.ControllerResponse `json:"data"`
}

// Handler CRUD и поиск контролеров
type Handler struct {
	service ControllersService
	logger  Logger
}

func NewHandler(service ControllersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/controllers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ControllerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /controllers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	controller, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /controllers", err)
		return
	}

	h.logger.Info("POST /controllers - Controller created: controller_id=%d", controller.ID)
	handlers.RespondJSON(w, http.StatusCreated, controller)
}

// Get GET /api/controllers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidControllerID)
		return
	}

	controller, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /controllers/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, controller)
}

// List GET /api/controllers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /controllers", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Search GET /api/controllers/buscar/{criterio}/{valor}
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	list, err := h.service.Search(r.Context(), vars["criterio"], vars["valor"])
	if err != nil {
		if errors.Is(err, controllersService.ErrInvalidInput) {
			h.logger.Warn("GET /controllers/buscar - Invalid criterion: %s", vars["criterio"])
			handlers.RespondBadRequest(w, msgInvalidCriterion)
			return
		}
		h.respondServiceError(w, "GET /controllers/buscar", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Update PUT /api/controllers/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidControllerID)
		return
	}

	var req models.ControllerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /controllers/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	controller, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /controllers/{id}", err)
		return
	}

	h.logger.Info("PUT /controllers/%d - Controller updated", id)
	handlers.RespondJSON(w, http.StatusOK, controller)
}

// Delete DELETE /api/controllers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidControllerID)
		return
	}

	controller, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "DELETE /controllers/{id}", err)
		return
	}

	h.logger.Info("DELETE /controllers/%d - Controller deleted", id)
	handlers.RespondJSON(w, http.StatusOK, DeleteResponse{Message: msgControllerDeleted, Data: controller})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, controllersService.ErrControllerNotFound):
		h.logger.Warn("%s - Controller not found", route)
		handlers.RespondNotFound(w, msgControllerNotFound)

	case errors.Is(err, controllersService.ErrDuplicateIdentification):
		h.logger.Warn("%s - Duplicate identification", route)
		handlers.RespondError(w, http.StatusConflict, msgDuplicateID)

	case errors.Is(err, controllersService.ErrControllerInUse):
		h.logger.Warn("%s - Controller in use", route)
		handlers.RespondError(w, http.StatusConflict, msgControllerInUse)

	case errors.Is(err, controllersService.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidController)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
