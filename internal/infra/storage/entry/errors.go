package entry

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись не найдена
	ErrEntryNotFound = errors.New("entry.repository: entry not found")

	// ErrEntryNotOpen возвращается, когда запись уже закрыта (условное обновление не затронуло строк)
	ErrEntryNotOpen = errors.New("entry.repository: entry is not open")

	// ErrDuplicatePlate нарушение ux_entradas_placa_activa
	ErrDuplicatePlate = errors.New("entry.repository: open entry with this plate already exists")

	// ErrSpaceOccupied нарушение ux_entradas_espacio_activo
	ErrSpaceOccupied = errors.New("entry.repository: space is occupied")

	// ErrLotNotFound нарушение внешнего ключа на парковку
	ErrLotNotFound = errors.New("entry.repository: parking lot not found")

	// ErrControllerNotFound нарушение внешнего ключа на контролера
	ErrControllerNotFound = errors.New("entry.repository: controller not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("entry.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("entry.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("entry.repository: failed to scan row")
)
