package tariffs

import "errors"

var (
	// ErrTariffNotFound возвращается, когда тариф не найден
	ErrTariffNotFound = errors.New("tariff not found")

	// ErrLotNotFound возвращается, когда указанная парковка не существует
	ErrLotNotFound = errors.New("parking lot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
