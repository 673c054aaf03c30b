package parkinglots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ParkingLotRepository интерфейс репозитория парковок
type ParkingLotRepository interface {
	Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error)
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
	List(ctx context.Context) ([]*domain.ParkingLot, error)
	Search(ctx context.Context, search domain.ParkingLotSearch) ([]*domain.ParkingLot, error)
	Update(ctx context.Context, id int64, lot *domain.ParkingLot) (*domain.ParkingLot, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
