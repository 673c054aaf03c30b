package users

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	usersService "github.com/m04kA/SMC-ParkingService/internal/service/users"
	"github.com/m04kA/SMC-ParkingService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidUserID      = "Identificador de usuario inválido"
	msgUserNotFound       = "Usuario no encontrado"
	msgDuplicateName      = "El nombre de usuario ya está en uso"
	msgDuplicateEmail     = "El email ya está registrado"
	msgInvalidUser        = "Datos de usuario inválidos: nombre de al menos 2 caracteres, email válido, contraseña de al menos 6 caracteres y rol administrador u operador"
	msgInvalidCriterion   = "Criterio de búsqueda inválido, use nombre, email o rol"
	msgUserDeleted        = "Usuario eliminado"
)

// Handler CRUD и поиск пользователей
type Handler struct {
	service UsersService
	logger  Logger
}

func NewHandler(service UsersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /users", err)
		return
	}

	h.logger.Info("POST /users - User created: user_id=%d", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, user)
}

// Get GET /api/users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /users/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

// List GET /api/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /users", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Search GET /api/users/buscar/{criterio}/{valor}
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	list, err := h.service.Search(r.Context(), vars["criterio"], vars["valor"])
	if err != nil {
		if errors.Is(err, usersService.ErrInvalidInput) {
			h.logger.Warn("GET /users/buscar - Invalid criterion: %s", vars["criterio"])
			handlers.RespondBadRequest(w, msgInvalidCriterion)
			return
		}
		h.respondServiceError(w, "GET /users/buscar", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Update PUT /api/users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.UpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /users/{id}", err)
		return
	}

	h.logger.Info("PUT /users/%d - User updated", id)
	handlers.RespondJSON(w, http.StatusOK, user)
}

// Delete DELETE /api/users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /users/{id}", err)
		return
	}

	h.logger.Info("DELETE /users/%d - User deleted", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgUserDeleted})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, usersService.ErrUserNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, usersService.ErrDuplicateName):
		h.logger.Warn("%s - Duplicate user name", route)
		handlers.RespondError(w, http.StatusConflict, msgDuplicateName)

	case errors.Is(err, usersService.ErrDuplicateEmail):
		h.logger.Warn("%s - Duplicate email", route)
		handlers.RespondError(w, http.StatusConflict, msgDuplicateEmail)

	case errors.Is(err, usersService.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidUser)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
