package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// CalculationMode способ начисления платы по тарифу
type CalculationMode string

const (
	ModePerMinute CalculationMode = "por_minuto"
	ModePerHour   CalculationMode = "por_hora"
	ModePerDay    CalculationMode = "por_dia"
	ModeFixed     CalculationMode = "fijo"
)

// IsValid returns true for a known calculation mode
func (m CalculationMode) IsValid() bool {
	switch m {
	case ModePerMinute, ModePerHour, ModePerDay, ModeFixed:
		return true
	}
	return false
}

// VehicleType тип транспортного средства
type VehicleType string

const (
	VehicleCar        VehicleType = "automovil"
	VehicleMotorcycle VehicleType = "moto"
	VehicleTruck      VehicleType = "camion"
	VehicleOther      VehicleType = "otros"

	// VehicleAny подстановочное значение, допустимо только в тарифах
	VehicleAny VehicleType = "todos"
)

// IsValid returns true for a concrete vehicle type (wildcard excluded)
func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleCar, VehicleMotorcycle, VehicleTruck, VehicleOther:
		return true
	}
	return false
}

// IsValidForTariff returns true for a concrete type or the wildcard
func (v VehicleType) IsValidForTariff() bool {
	return v == VehicleAny || v.IsValid()
}

// Weekday день недели в том виде, в каком он хранится в тарифах
type Weekday string

const (
	Sunday    Weekday = "Domingo"
	Monday    Weekday = "Lunes"
	Tuesday   Weekday = "Martes"
	Wednesday Weekday = "Miércoles"
	Thursday  Weekday = "Jueves"
	Friday    Weekday = "Viernes"
	Saturday  Weekday = "Sábado"

	// AnyDay подстановочное значение для тарифов
	AnyDay Weekday = "Todos"
)

// weekdays индекс совпадает с time.Weekday
var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the weekday name of t in t's location
func WeekdayOf(t time.Time) Weekday {
	return weekdays[t.Weekday()]
}

// ParseWeekday разбирает конкретный день недели (без подстановки)
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range weekdays {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, s)
}

// Index номер дня, совместимый с time.Weekday; -1 для неизвестных значений
func (d Weekday) Index() int {
	for i, w := range weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// IsValidForTariff returns true for a concrete weekday or the wildcard
func (d Weekday) IsValidForTariff() bool {
	return d == AnyDay || d.Index() >= 0
}

// Tariff правило начисления платы.
// Пустые ParkingLotID, StartTime/EndTime и подстановочные VehicleType/DayOfWeek
// делают тариф применимым шире; при выборе побеждает самый специфичный.
type Tariff struct {
	ID             int64
	Name           string
	Description    *string
	Mode           CalculationMode
	VehicleType    VehicleType
	ParkingLotID   *int64 // NULL = любой парковки
	ParkingLotName *string
	DayOfWeek      Weekday
	StartTime      *types.TimeString // оба NULL = весь день
	EndTime        *types.TimeString
	Price          float64
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// HasWindow returns true if the tariff is limited to a time-of-day window
func (t *Tariff) HasWindow() bool {
	return t.StartTime != nil && t.EndTime != nil
}

// IsLotSpecific returns true if the tariff is bound to one parking lot
func (t *Tariff) IsLotSpecific() bool {
	return t.ParkingLotID != nil
}

// IsDaySpecific returns true if the tariff is bound to one weekday
func (t *Tariff) IsDaySpecific() bool {
	return t.DayOfWeek != AnyDay
}

// IsVehicleSpecific returns true if the tariff is bound to one vehicle type
func (t *Tariff) IsVehicleSpecific() bool {
	return t.VehicleType != VehicleAny
}

// Specificity ранг тарифа для выбора: парковка > день > окно > тип ТС.
// Сравнение рангов как чисел эквивалентно лексикографическому сравнению признаков.
func (t *Tariff) Specificity() int {
	rank := 0
	if t.IsLotSpecific() {
		rank |= 1 << 3
	}
	if t.IsDaySpecific() {
		rank |= 1 << 2
	}
	if t.HasWindow() {
		rank |= 1 << 1
	}
	if t.IsVehicleSpecific() {
		rank |= 1
	}
	return rank
}

// Matches проверяет, применим ли активный тариф к запросу
func (t *Tariff) Matches(q TariffQuery) bool {
	if !t.Active {
		return false
	}
	if t.VehicleType != q.VehicleType && t.VehicleType != VehicleAny {
		return false
	}
	if t.ParkingLotID != nil && *t.ParkingLotID != q.ParkingLotID {
		return false
	}
	if t.DayOfWeek != q.Day && t.DayOfWeek != AnyDay {
		return false
	}
	if t.StartTime == nil && t.EndTime == nil {
		return true
	}
	if t.StartTime == nil || t.EndTime == nil {
		return false
	}
	return q.Time.InWindow(*t.StartTime, *t.EndTime)
}

// TariffQuery параметры подбора тарифа для въезда
type TariffQuery struct {
	VehicleType  VehicleType
	ParkingLotID int64
	Day          Weekday
	Time         types.TimeString // HH:MM въезда
}
