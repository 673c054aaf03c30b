package domain

import (
	"fmt"
	"strings"
	"time"
)

// DayRange дни работы парковки, включительно и с переходом через воскресенье
// ("Viernes-Lunes" = пятница, суббота, воскресенье, понедельник)
type DayRange struct {
	From Weekday
	To   Weekday
}

// EveryDay полная неделя
var EveryDay = DayRange{From: Monday, To: Sunday}

// ParseDayRange разбирает "Lunes-Sábado" или одиночный день "Lunes"
func ParseDayRange(s string) (DayRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DayRange{}, fmt.Errorf("%w: empty day range", ErrInvalidInput)
	}

	from, to, found := strings.Cut(s, "-")
	if !found {
		to = from
	}

	fromDay, err := ParseWeekday(strings.TrimSpace(from))
	if err != nil {
		return DayRange{}, err
	}
	toDay, err := ParseWeekday(strings.TrimSpace(to))
	if err != nil {
		return DayRange{}, err
	}

	return DayRange{From: fromDay, To: toDay}, nil
}

// String возвращает представление для хранения
func (r DayRange) String() string {
	if r.From == r.To {
		return string(r.From)
	}
	return string(r.From) + "-" + string(r.To)
}

// Contains проверяет, входит ли день в диапазон
func (r DayRange) Contains(day Weekday) bool {
	from, to, d := r.From.Index(), r.To.Index(), day.Index()
	if from < 0 || to < 0 || d < 0 {
		return false
	}
	if from <= to {
		return d >= from && d <= to
	}
	return d >= from || d <= to
}

// ParkingLot парковка
type ParkingLot struct {
	ID            int64
	Name          string
	Capacity      int
	Location      string
	City          string
	OperatingDays DayRange
	CreatedAt     time.Time
}

// HasSpace returns true if space is a valid place number for the lot
func (p *ParkingLot) HasSpace(space int) bool {
	return space >= 1 && space <= p.Capacity
}

// LotOccupancy текущая занятость парковки (считается по открытым записям)
type LotOccupancy struct {
	ParkingLotID int64
	Name         string
	Capacity     int
	Occupied     int
}

// Available returns the number of free spaces
func (o *LotOccupancy) Available() int {
	if o.Occupied >= o.Capacity {
		return 0
	}
	return o.Capacity - o.Occupied
}

// IsFull returns true if no space is left
func (o *LotOccupancy) IsFull() bool {
	return o.Available() == 0
}

// OccupancyRate returns the occupancy as a percentage (0-100)
func (o *LotOccupancy) OccupancyRate() float64 {
	if o.Capacity == 0 {
		return 0
	}
	return RoundMoney(float64(o.Occupied) / float64(o.Capacity) * 100)
}
