package schedules

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	schedulesService "github.com/m04kA/SMC-ParkingService/internal/service/schedules"
	"github.com/m04kA/SMC-ParkingService/internal/service/schedules/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidScheduleID  = "Identificador de horario inválido"
	msgScheduleNotFound   = "Horario no encontrado"
	msgLotNotFound        = "Parqueadero no encontrado"
	msgInvalidSchedule    = "Datos de horario inválidos: parqueadero_id, dia y horas HH:MM son requeridos"
	msgInvalidTimeRange   = "La hora de cierre debe ser posterior a la hora de apertura"
	msgDayNotOperating    = "El parqueadero no opera ese día"
	msgConflictFormat     = "Horario conflictivo: se cruza con un horario existente de %s a %s"
	msgInvalidCriterion   = "Criterio de búsqueda inválido, use dia, parqueadero, hora_inicio u hora_fin"
	msgScheduleDeleted    = "Horario eliminado"
)

// Handler CRUD и поиск расписаний
type Handler struct {
	service SchedulesService
	logger  Logger
}

func NewHandler(service SchedulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/horarios
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /horarios - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	schedule, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /horarios", err)
		return
	}

	h.logger.Info("POST /horarios - Schedule created: schedule_id=%d", schedule.ID)
	handlers.RespondJSON(w, http.StatusCreated, schedule)
}

// Get GET /api/horarios/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	schedule, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /horarios/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, schedule)
}

// List GET /api/horarios
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /horarios", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Search GET /api/horarios/buscar/{criterio}/{valor}
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	list, err := h.service.Search(r.Context(), vars["criterio"], vars["valor"])
	if err != nil {
		if errors.Is(err, schedulesService.ErrInvalidInput) {
			h.logger.Warn("GET /horarios/buscar - Invalid criterion: %s", vars["criterio"])
			handlers.RespondBadRequest(w, msgInvalidCriterion)
			return
		}
		h.respondServiceError(w, "GET /horarios/buscar", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Update PUT /api/horarios/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req models.ScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /horarios/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	schedule, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /horarios/{id}", err)
		return
	}

	h.logger.Info("PUT /horarios/%d - Schedule updated", id)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}

// Delete DELETE /api/horarios/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /horarios/{id}", err)
		return
	}

	h.logger.Info("DELETE /horarios/%d - Schedule deleted", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgScheduleDeleted})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	var conflict *schedulesService.ConflictError

	switch {
	case errors.As(err, &conflict):
		h.logger.Warn("%s - Schedule overlaps %s-%s", route, conflict.Opens, conflict.Closes)
		handlers.RespondError(w, http.StatusConflict, fmt.Sprintf(msgConflictFormat, conflict.Opens, conflict.Closes))

	case errors.Is(err, schedulesService.ErrScheduleNotFound):
		h.logger.Warn("%s - Schedule not found", route)
		handlers.RespondNotFound(w, msgScheduleNotFound)

	case errors.Is(err, schedulesService.ErrLotNotFound):
		h.logger.Warn("%s - Parking lot not found", route)
		handlers.RespondNotFound(w, msgLotNotFound)

	case errors.Is(err, schedulesService.ErrInvalidTimeRange):
		h.logger.Warn("%s - Invalid time range: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)

	case errors.Is(err, schedulesService.ErrDayNotOperating):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgDayNotOperating)

	case errors.Is(err, schedulesService.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
