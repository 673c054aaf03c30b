package reports

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	reportsService "github.com/m04kA/SMC-ParkingService/internal/service/reports"
)

const (
	msgInvalidLotID  = "Identificador de parqueadero inválido"
	msgLotNotFound   = "Parqueadero no encontrado"
	msgInvalidPeriod = "Periodo inválido: fecha_inicio y fecha_fin en formato YYYY-MM-DD son requeridas"
	msgReportFailed  = "Error al obtener ingresos"
)

// Handler отчеты по доходам и занятости
type Handler struct {
	service ReportsService
	logger  Logger
}

func NewHandler(service ReportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RevenueByLot GET /api/reportes/ingresos
func (h *Handler) RevenueByLot(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.RevenueByLot(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /reportes/ingresos", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, handlers.DataResponse{Success: true, Data: data})
}

// RevenueForLot GET /api/reportes/ingresos/{parqueadero_id}
func (h *Handler) RevenueForLot(w http.ResponseWriter, r *http.Request) {
	lotID, ok := handlers.PathID(r, "parqueadero_id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	data, err := h.service.RevenueForLot(r.Context(), lotID)
	if err != nil {
		h.respondServiceError(w, "GET /reportes/ingresos/{parqueadero_id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, handlers.DataResponse{Success: true, Data: data})
}

// RevenueForPeriod GET /api/reportes/ingresos/{parqueadero_id}/periodo?fecha_inicio=&fecha_fin=
func (h *Handler) RevenueForPeriod(w http.ResponseWriter, r *http.Request) {
	lotID, ok := handlers.PathID(r, "parqueadero_id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	query := r.URL.Query()
	data, err := h.service.RevenueForPeriod(r.Context(), lotID, query.Get("fecha_inicio"), query.Get("fecha_fin"))
	if err != nil {
		h.respondServiceError(w, "GET /reportes/ingresos/{parqueadero_id}/periodo", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, handlers.DataResponse{Success: true, Data: data})
}

// RevenueByVehicle GET /api/reportes/ingresos/{parqueadero_id}/vehiculos
func (h *Handler) RevenueByVehicle(w http.ResponseWriter, r *http.Request) {
	lotID, ok := handlers.PathID(r, "parqueadero_id")
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	data, err := h.service.RevenueByVehicle(r.Context(), lotID)
	if err != nil {
		h.respondServiceError(w, "GET /reportes/ingresos/{parqueadero_id}/vehiculos", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, handlers.DataResponse{Success: true, Data: data})
}

// Occupancy GET /api/reportes/ocupacion
func (h *Handler) Occupancy(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Occupancy(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /reportes/ocupacion", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, handlers.DataResponse{Success: true, Data: data})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, reportsService.ErrLotNotFound):
		h.logger.Warn("%s - Parking lot not found", route)
		handlers.RespondNotFound(w, msgLotNotFound)

	case errors.Is(err, reportsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid period: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)

	default:
		h.logger.Error("%s - Failed to build report: %v", route, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgReportFailed)
	}
}
