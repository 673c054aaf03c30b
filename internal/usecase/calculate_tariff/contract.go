package calculate_tariff

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// TariffRepository источник тарифов-кандидатов
type TariffRepository interface {
	FindCandidates(ctx context.Context, q domain.TariffQuery) ([]*domain.Tariff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
