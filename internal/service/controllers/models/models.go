package models

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// ControllerRequest запрос на создание или изменение контролера.
// При изменении Identificacion игнорируется
type ControllerRequest struct {
	Nombre         string  `json:"nombre"`
	Identificacion string  `json:"identificacion"`
	Telefono       *string `json:"telefono"`
	Rol            string  `json:"rol"`    // пусто = operador
	Activo         *bool   `json:"activo"` // nil = true
}

// ControllerResponse контролер в формате клиента
type ControllerResponse struct {
	ID             int64   `json:"id"`
	Nombre         string  `json:"nombre"`
	Identificacion string  `json:"identificacion"`
	Telefono       *string `json:"telefono"`
	Rol            string  `json:"rol"`
	Activo         bool    `json:"activo"`
}

// FromDomainController конвертирует domain модель в DTO
func FromDomainController(c *domain.Controller) *ControllerResponse {
	if c == nil {
		return nil
	}

	return &ControllerResponse{
		ID:             c.ID,
		Nombre:         c.Name,
		Identificacion: c.Identification,
		Telefono:       c.Phone,
		Rol:            string(c.Role),
		Activo:         c.Active,
	}
}

// FromDomainControllers конвертирует список
func FromDomainControllers(list []*domain.Controller) []ControllerResponse {
	out := make([]ControllerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *FromDomainController(c))
	}
	return out
}
