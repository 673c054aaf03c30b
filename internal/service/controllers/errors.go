package controllers

import "errors"

var (
	// ErrControllerNotFound возвращается, когда контролер не найден
	ErrControllerNotFound = errors.New("controller not found")

	// ErrDuplicateIdentification возвращается, если номер документа уже зарегистрирован
	ErrDuplicateIdentification = errors.New("identification already registered")

	// ErrControllerInUse возвращается при удалении контролера с записями
	ErrControllerInUse = errors.New("controller has entries")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
