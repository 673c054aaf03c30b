package reports

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ReportRepository интерфейс репозитория отчетов
type ReportRepository interface {
	RevenueByLot(ctx context.Context) ([]domain.LotRevenue, error)
	RevenueForLot(ctx context.Context, lotID int64) (*domain.LotRevenue, error)
	DailyRevenue(ctx context.Context, lotID int64, from, to time.Time) ([]domain.DailyRevenue, error)
	RevenueByVehicle(ctx context.Context, lotID int64) ([]domain.VehicleRevenue, error)
	Occupancy(ctx context.Context) ([]domain.LotOccupancy, error)
}

// ParkingLotRepository интерфейс репозитория парковок
type ParkingLotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
