package parkinglots

import "errors"

var (
	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("parking lot not found")

	// ErrLotInUse возвращается при удалении парковки, у которой есть записи или тарифы
	ErrLotInUse = errors.New("parking lot is in use")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
