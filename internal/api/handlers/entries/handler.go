package entries

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	entriesService "github.com/m04kA/SMC-ParkingService/internal/service/entries"
)

const (
	msgInvalidEntryID   = "Identificador de entrada inválido"
	msgEntryNotFound    = "Entrada no encontrada"
	msgInvalidCriterion = "Criterio de búsqueda inválido, use placa, tipo_vehiculo o estado"
	msgEntryDeleted     = "Entrada eliminada"
)

// Handler чтение и удаление записей о въезде
type Handler struct {
	service EntriesService
	logger  Logger
}

func NewHandler(service EntriesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/entradas/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		h.logger.Warn("GET /entradas/{id} - Invalid entry ID")
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	entry, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entriesService.ErrEntryNotFound) {
			h.logger.Warn("GET /entradas/%d - Entry not found", id)
			handlers.RespondNotFound(w, msgEntryNotFound)
			return
		}
		h.logger.Error("GET /entradas/%d - Failed to get entry: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entry)
}

// List GET /api/entradas
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /entradas - Failed to list entries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /entradas - Listed %d entries", len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}

// Search GET /api/entradas/buscar/{criterio}/{valor}
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	criterion, value := vars["criterio"], vars["valor"]

	list, err := h.service.Search(r.Context(), criterion, value)
	if err != nil {
		if errors.Is(err, entriesService.ErrInvalidInput) {
			h.logger.Warn("GET /entradas/buscar - Invalid criterion: %s", criterion)
			handlers.RespondBadRequest(w, msgInvalidCriterion)
			return
		}
		h.logger.Error("GET /entradas/buscar - Failed to search entries: criterion=%s, error=%v", criterion, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Delete DELETE /api/entradas/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		h.logger.Warn("DELETE /entradas/{id} - Invalid entry ID")
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entriesService.ErrEntryNotFound) {
			h.logger.Warn("DELETE /entradas/%d - Entry not found", id)
			handlers.RespondNotFound(w, msgEntryNotFound)
			return
		}
		h.logger.Error("DELETE /entradas/%d - Failed to delete entry: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /entradas/%d - Entry deleted", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgEntryDeleted})
}
