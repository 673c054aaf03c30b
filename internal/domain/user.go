package domain

import "time"

// Role роль пользователя системы
type Role string

const (
	RoleAdmin      Role = "administrador"
	RoleOperator   Role = "operador"
	RoleController Role = "controlador"
)

// User администратор или оператор (вход по имени и паролю)
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}

// IsValid returns true for roles that can be assigned to a user account
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// ControllerRole должность контролера
type ControllerRole string

const (
	ControllerOperator   ControllerRole = "operador"
	ControllerSupervisor ControllerRole = "supervisor"
)

// IsValid returns true for known controller roles
func (r ControllerRole) IsValid() bool {
	return r == ControllerOperator || r == ControllerSupervisor
}

// Controller контролер на въезде (вход по имени и номеру документа)
type Controller struct {
	ID             int64
	Name           string
	Identification string
	Phone          *string
	Role           ControllerRole
	Active         bool
}

// UserUpdate частичное изменение пользователя; nil - поле не меняется
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
	Active       *bool
}

// IsEmpty returns true if nothing is going to change
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.PasswordHash == nil && u.Role == nil && u.Active == nil
}

// Principal аутентифицированный субъект запроса
type Principal struct {
	ID   int64
	Name string
	Role Role
}

// IsAdmin returns true for administrators
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
