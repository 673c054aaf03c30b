package tariff

import "errors"

var (
	// ErrTariffNotFound возвращается, когда тариф не найден
	ErrTariffNotFound = errors.New("tariff.repository: tariff not found")

	// ErrLotNotFound возвращается, когда указанная парковка не существует
	ErrLotNotFound = errors.New("tariff.repository: parking lot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tariff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("tariff.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("tariff.repository: failed to scan row")
)
