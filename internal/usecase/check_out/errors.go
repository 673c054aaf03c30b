package check_out

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись не найдена
	ErrEntryNotFound = errors.New("check_out: entry not found")

	// ErrAlreadyClosed возвращается при повторном выезде по закрытой записи
	ErrAlreadyClosed = errors.New("check_out: entry is already closed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_out: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_out: internal error")
)
