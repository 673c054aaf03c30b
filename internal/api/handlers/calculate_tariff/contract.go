package calculate_tariff

import (
	"context"

	calculateTariff "github.com/m04kA/SMC-ParkingService/internal/usecase/calculate_tariff"
)

type CalculateTariffUseCase interface {
	Execute(ctx context.Context, req *calculateTariff.Request) (*calculateTariff.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
