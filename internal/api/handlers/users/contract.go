package users

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/users/models"
)

type UsersService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	GetByID(ctx context.Context, id int64) (*models.UserResponse, error)
	List(ctx context.Context) ([]models.UserResponse, error)
	Search(ctx context.Context, criterion, value string) ([]models.UserResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
