package update_entry

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись не найдена
	ErrEntryNotFound = errors.New("update_entry: entry not found")

	// ErrValidation возвращается при некорректных входных данных
	ErrValidation = errors.New("update_entry: invalid input data")

	// ErrDuplicatePlate возвращается, когда новый номер уже на стоянке
	ErrDuplicatePlate = errors.New("update_entry: vehicle with this plate is already parked")

	// ErrSpaceOccupied возвращается, когда новое место занято другой записью
	ErrSpaceOccupied = errors.New("update_entry: space is occupied")

	// ErrLotNotFound возвращается, когда новая парковка не найдена
	ErrLotNotFound = errors.New("update_entry: parking lot not found")

	// ErrCapacityExceeded возвращается, когда место вне вместимости или парковка заполнена
	ErrCapacityExceeded = errors.New("update_entry: parking lot capacity exceeded")

	// ErrControllerNotFound возвращается, когда контролер не найден
	ErrControllerNotFound = errors.New("update_entry: controller not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_entry: internal error")
)
