package check_in

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// EntryRepository интерфейс репозитория записей о въезде
type EntryRepository interface {
	ExistsOpenByPlate(ctx context.Context, plate string, excludeID int64) (bool, error)
	ExistsOpenInSpace(ctx context.Context, lotID int64, space int, excludeID int64) (bool, error)
	CountOpenInLot(ctx context.Context, lotID int64, excludeID int64) (int, error)
	Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
}

// ParkingLotRepository интерфейс репозитория парковок
type ParkingLotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики въездов
type Metrics interface {
	ObserveCheckIn(vehicleType string)
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
