package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CreateUserRequest запрос на создание пользователя
type CreateUserRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"` // пусто = operador
}

// UpdateUserRequest частичное изменение; отсутствующие поля не меняются
type UpdateUserRequest struct {
	Nombre   *string `json:"nombre"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Rol      *string `json:"rol"`
	Activo   *bool   `json:"activo"`
}

// UserResponse пользователь без пароля
type UserResponse struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Email         string    `json:"email"`
	Rol           string    `json:"rol"`
	Activo        bool      `json:"activo"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:            u.ID,
		Nombre:        u.Name,
		Email:         u.Email,
		Rol:           string(u.Role),
		Activo:        u.Active,
		FechaCreacion: u.CreatedAt,
	}
}

// FromDomainUsers конвертирует список
func FromDomainUsers(list []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *FromDomainUser(u))
	}
	return out
}
