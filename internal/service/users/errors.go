package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateName возвращается, если имя уже занято
	ErrDuplicateName = errors.New("user name already taken")

	// ErrDuplicateEmail возвращается, если email уже занят
	ErrDuplicateEmail = errors.New("email already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
