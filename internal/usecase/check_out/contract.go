package check_out

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/calculate_tariff"
)

// EntryRepository интерфейс репозитория записей о въезде
type EntryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)
	Close(ctx context.Context, id int64, checkOut time.Time, amount float64) error
}

// TariffCalculator подбор тарифа и расчет суммы
type TariffCalculator interface {
	Execute(ctx context.Context, req *calculate_tariff.Request) (*calculate_tariff.Response, error)
}

// Metrics счетчики выездов
type Metrics interface {
	ObserveCheckOut(vehicleType string, charged bool, amount float64)
	ObserveTariffError(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
