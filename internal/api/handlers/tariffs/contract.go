package tariffs

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

type TariffsService interface {
	Create(ctx context.Context, req *models.TariffRequest) (*models.TariffResponse, error)
	GetByID(ctx context.Context, id int64) (*models.TariffResponse, error)
	List(ctx context.Context) ([]models.TariffResponse, error)
	Search(ctx context.Context, criterion, value string) ([]models.TariffResponse, error)
	Update(ctx context.Context, id int64, req *models.TariffRequest) (*models.TariffResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
