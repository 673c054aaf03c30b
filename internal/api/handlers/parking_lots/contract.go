package parking_lots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/parkinglots/models"
)

type ParkingLotsService interface {
	Create(ctx context.Context, req *models.ParkingLotRequest) (*models.ParkingLotResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ParkingLotResponse, error)
	List(ctx context.Context) ([]models.ParkingLotResponse, error)
	Search(ctx context.Context, criterion, value string) ([]models.ParkingLotResponse, error)
	Update(ctx context.Context, id int64, req *models.ParkingLotRequest) (*models.ParkingLotResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
