package check_in

import "errors"

var (
	// ErrValidation возвращается при некорректных входных данных
	ErrValidation = errors.New("check_in: invalid input data")

	// ErrDuplicatePlate возвращается, когда у номера уже есть открытая запись
	ErrDuplicatePlate = errors.New("check_in: vehicle with this plate is already parked")

	// ErrSpaceOccupied возвращается, когда место на парковке занято
	ErrSpaceOccupied = errors.New("check_in: space is occupied")

	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("check_in: parking lot not found")

	// ErrCapacityExceeded возвращается, когда парковка заполнена или номер места больше вместимости
	ErrCapacityExceeded = errors.New("check_in: parking lot capacity exceeded")

	// ErrControllerNotFound возвращается, когда контролер не найден
	ErrControllerNotFound = errors.New("check_in: controller not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in: internal error")
)
