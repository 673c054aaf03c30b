package models

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// LoginRequest вход администратора или оператора
type LoginRequest struct {
	Nombre   string `json:"nombre"`
	Password string `json:"password"`
}

// ControllerLoginRequest вход контролера по номеру документа
type ControllerLoginRequest struct {
	Nombre         string `json:"nombre"`
	Identificacion string `json:"identificacion"`
}

// UserInfo данные пользователя в ответе на вход
type UserInfo struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email,omitempty"`
	Rol    string `json:"rol"`
}

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// FromPrincipal собирает ответ на вход
func FromPrincipal(p domain.Principal, email, token string) *LoginResponse {
	return &LoginResponse{
		Success: true,
		Token:   token,
		User: UserInfo{
			ID:     p.ID,
			Nombre: p.Name,
			Email:  email,
			Rol:    string(p.Role),
		},
	}
}
