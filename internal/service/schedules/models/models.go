package models

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// ScheduleRequest запрос на создание или замену расписания
type ScheduleRequest struct {
	ParqueaderoID int64  `json:"parqueadero_id"`
	Dia           string `json:"dia"`
	HoraInicio    string `json:"hora_inicio"` // "HH:MM"
	HoraFin       string `json:"hora_fin"`
	Activo        *bool  `json:"activo"` // nil = true
}

// ScheduleResponse расписание в формате клиента
type ScheduleResponse struct {
	ID            int64  `json:"id"`
	ParqueaderoID int64  `json:"parqueadero_id"`
	Dia           string `json:"dia"`
	HoraInicio    string `json:"hora_inicio"`
	HoraFin       string `json:"hora_fin"`
	AsignadoA     string `json:"asignadoA"`
	Activo        bool   `json:"activo"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:            s.ID,
		ParqueaderoID: s.ParkingLotID,
		Dia:           string(s.Day),
		HoraInicio:    s.Opens.String(),
		HoraFin:       s.Closes.String(),
		AsignadoA:     s.ParkingLotName,
		Activo:        s.Active,
	}
}

// FromDomainSchedules конвертирует список
func FromDomainSchedules(list []*domain.Schedule) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *FromDomainSchedule(s))
	}
	return out
}
