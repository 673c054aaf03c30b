package schedules

import (
	"errors"
	"fmt"
)

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("parking lot not found")

	// ErrDayNotOperating возвращается, если парковка не работает в этот день
	ErrDayNotOperating = errors.New("parking lot does not operate on this day")

	// ErrInvalidTimeRange возвращается, если закрытие не позже открытия
	ErrInvalidTimeRange = errors.New("closing time must be after opening time")

	// ErrScheduleConflict возвращается при пересечении с существующим расписанием
	ErrScheduleConflict = errors.New("schedule overlaps an existing one")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// ConflictError пересечение с конкретным расписанием
type ConflictError struct {
	Opens  string
	Closes string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s-%s", ErrScheduleConflict, e.Opens, e.Closes)
}

// Is позволяет errors.Is(err, ErrScheduleConflict)
func (e *ConflictError) Is(target error) bool {
	return target == ErrScheduleConflict
}
