package controllers

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ControllerRepository интерфейс репозитория контролеров
type ControllerRepository interface {
	Create(ctx context.Context, c *domain.Controller) (*domain.Controller, error)
	GetByID(ctx context.Context, id int64) (*domain.Controller, error)
	List(ctx context.Context) ([]*domain.Controller, error)
	Search(ctx context.Context, search domain.ControllerSearch) ([]*domain.Controller, error)
	Update(ctx context.Context, id int64, c *domain.Controller) (*domain.Controller, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
