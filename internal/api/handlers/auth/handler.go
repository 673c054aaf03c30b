package auth

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	authService "github.com/m04kA/SMC-ParkingService/internal/service/auth"
	"github.com/m04kA/SMC-ParkingService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody   = "Cuerpo de la solicitud inválido"
	msgCredentialsRequired  = "Nombre y contraseña son requeridos"
	msgControllerRequired   = "Nombre e identificación son requeridos"
	msgInvalidCredentials   = "Credenciales inválidas"
	msgControllerNotMatched = "Controlador no encontrado o identificación incorrecta"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Login POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgCredentialsRequired)
		case errors.Is(err, authService.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: nombre=%s", req.Nombre)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		default:
			h.logger.Error("POST /auth/login - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// LoginController POST /api/auth/controlador
func (h *Handler) LoginController(w http.ResponseWriter, r *http.Request) {
	var req models.ControllerLoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/controlador - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.LoginController(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgControllerRequired)
		case errors.Is(err, authService.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/controlador - Invalid credentials: nombre=%s", req.Nombre)
			handlers.RespondUnauthorized(w, msgControllerNotMatched)
		default:
			h.logger.Error("POST /auth/controlador - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
