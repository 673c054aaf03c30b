package controller

import "errors"

var (
	// ErrControllerNotFound возвращается, когда контролер не найден
	ErrControllerNotFound = errors.New("controller.repository: controller not found")

	// ErrDuplicateIdentification возвращается, если номер документа уже занят
	ErrDuplicateIdentification = errors.New("controller.repository: identification already registered")

	// ErrControllerInUse возвращается при удалении контролера, на которого ссылаются записи
	ErrControllerInUse = errors.New("controller.repository: controller has entries")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("controller.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("controller.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("controller.repository: failed to scan row")
)
