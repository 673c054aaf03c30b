package controllers

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/controllers/models"
)

type ControllersService interface {
	Create(ctx context.Context, req *models.ControllerRequest) (*models.ControllerResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ControllerResponse, error)
	List(ctx context.Context) ([]models.ControllerResponse, error)
	Search(ctx context.Context, criterion, value string) ([]models.ControllerResponse, error)
	Update(ctx context.Context, id int64, req *models.ControllerRequest) (*models.ControllerResponse, error)
	Delete(ctx context.Context, id int64) (*models.ControllerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
