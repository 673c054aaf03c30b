package calculate_tariff

import "errors"

var (
	// ErrMissingCheckOut возвращается, если не указано время выезда
	ErrMissingCheckOut = errors.New("calculate_tariff: check-out time is required")

	// ErrNoApplicableRate возвращается, если ни один активный тариф не подходит
	ErrNoApplicableRate = errors.New("calculate_tariff: no applicable rate")

	// ErrInvalidCalculationMode возвращается при неизвестном способе начисления
	ErrInvalidCalculationMode = errors.New("calculate_tariff: invalid calculation mode")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calculate_tariff: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calculate_tariff: internal error")
)
