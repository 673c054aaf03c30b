package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ParkingLotRequest запрос на создание или замену парковки
type ParkingLotRequest struct {
	Nombre        string `json:"nombre"`
	Capacidad     int    `json:"capacidad"`
	Ubicacion     string `json:"ubicacion"`
	Ciudad        string `json:"ciudad"`
	DiasOperacion string `json:"dias_operacion"` // "Lunes-Sábado"; пусто = каждый день
}

// ParkingLotResponse парковка в формате клиента
type ParkingLotResponse struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Capacidad     int       `json:"capacidad"`
	Ubicacion     string    `json:"ubicacion"`
	Ciudad        string    `json:"ciudad"`
	DiasOperacion string    `json:"dias_operacion"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// FromDomainLot конвертирует domain модель в DTO
func FromDomainLot(lot *domain.ParkingLot) *ParkingLotResponse {
	if lot == nil {
		return nil
	}

	return &ParkingLotResponse{
		ID:            lot.ID,
		Nombre:        lot.Name,
		Capacidad:     lot.Capacity,
		Ubicacion:     lot.Location,
		Ciudad:        lot.City,
		DiasOperacion: lot.OperatingDays.String(),
		FechaCreacion: lot.CreatedAt,
	}
}

// FromDomainLots конвертирует список; пустой список сериализуется как []
func FromDomainLots(lots []*domain.ParkingLot) []ParkingLotResponse {
	result := make([]ParkingLotResponse, 0, len(lots))
	for _, lot := range lots {
		result = append(result, *FromDomainLot(lot))
	}
	return result
}
