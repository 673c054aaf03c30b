package domain

import (
	"strings"
	"time"
)

// EntryStatus статус записи о въезде
type EntryStatus string

const (
	EntryOpen   EntryStatus = "activa"
	EntryClosed EntryStatus = "cerrada"
)

// IsValid returns true for a known entry status
func (s EntryStatus) IsValid() bool {
	return s == EntryOpen || s == EntryClosed
}

// Entry запись о пребывании транспортного средства на парковке
type Entry struct {
	ID            int64
	Plate         string
	VehicleType   VehicleType
	ParkingLotID  int64
	ControllerID  int64
	SpaceNumber   int
	CheckInTime   time.Time
	CheckOutTime  *time.Time
	Status        EntryStatus
	ChargedAmount float64 // 0 до закрытия

	// Денормализованные данные для отображения
	ParkingLotName string
	ControllerName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true while the vehicle is still parked
func (e *Entry) IsOpen() bool {
	return e.Status == EntryOpen
}

// IsClosed returns true once the entry was checked out
func (e *Entry) IsClosed() bool {
	return e.Status == EntryClosed
}

// NormalizePlate приводит номер к каноническому виду: без пробелов по краям, в верхнем регистре
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// EntryUpdate частичное обновление записи. nil = поле не меняется.
// Статус и время выезда здесь не редактируются: закрытие только через выезд.
type EntryUpdate struct {
	Plate        *string
	VehicleType  *VehicleType
	ParkingLotID *int64
	ControllerID *int64
	SpaceNumber  *int
}

// IsEmpty returns true if no field is set
func (u EntryUpdate) IsEmpty() bool {
	return u.Plate == nil && u.VehicleType == nil && u.ParkingLotID == nil &&
		u.ControllerID == nil && u.SpaceNumber == nil
}

// ApplyTo применяет заданные поля к записи
func (u EntryUpdate) ApplyTo(e *Entry) {
	if u.Plate != nil {
		e.Plate = NormalizePlate(*u.Plate)
	}
	if u.VehicleType != nil {
		e.VehicleType = *u.VehicleType
	}
	if u.ParkingLotID != nil {
		e.ParkingLotID = *u.ParkingLotID
	}
	if u.ControllerID != nil {
		e.ControllerID = *u.ControllerID
	}
	if u.SpaceNumber != nil {
		e.SpaceNumber = *u.SpaceNumber
	}
}

// TouchesSpace returns true if the update moves the entry to another lot or space
func (u EntryUpdate) TouchesSpace() bool {
	return u.ParkingLotID != nil || u.SpaceNumber != nil
}
