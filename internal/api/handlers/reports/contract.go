package reports

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

type ReportsService interface {
	RevenueByLot(ctx context.Context) ([]models.LotRevenueResponse, error)
	RevenueForLot(ctx context.Context, lotID int64) (*models.LotRevenueResponse, error)
	RevenueForPeriod(ctx context.Context, lotID int64, from, to string) ([]models.DailyRevenueResponse, error)
	RevenueByVehicle(ctx context.Context, lotID int64) ([]models.VehicleRevenueResponse, error)
	Occupancy(ctx context.Context) ([]models.OccupancyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
