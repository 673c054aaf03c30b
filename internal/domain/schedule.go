package domain

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Schedule часы работы парковки в конкретный день недели
type Schedule struct {
	ID             int64
	ParkingLotID   int64
	ParkingLotName string // заполняется при чтении
	Day            Weekday
	Opens          types.TimeString
	Closes         types.TimeString
	Active         bool
	CreatedAt      time.Time
}

// Overlaps проверяет пересечение с other на той же парковке в тот же день.
// Интервалы полуоткрытые: смена 08:00-12:00 и 12:00-18:00 не пересекаются.
func (s *Schedule) Overlaps(other *Schedule) bool {
	if s.ParkingLotID != other.ParkingLotID || s.Day != other.Day {
		return false
	}
	return s.Opens.IsBefore(other.Closes) && other.Opens.IsBefore(s.Closes)
}

// FindOverlap возвращает первое расписание из existing, пересекающееся с s
// (само s по ID пропускается)
func (s *Schedule) FindOverlap(existing []*Schedule) *Schedule {
	for _, other := range existing {
		if other == nil || (s.ID != 0 && other.ID == s.ID) {
			continue
		}
		if s.Overlaps(other) {
			return other
		}
	}
	return nil
}
