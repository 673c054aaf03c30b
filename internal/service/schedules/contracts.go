package schedules

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	List(ctx context.Context) ([]*domain.Schedule, error)
	ListForLotDay(ctx context.Context, lotID int64, day domain.Weekday) ([]*domain.Schedule, error)
	Search(ctx context.Context, search domain.ScheduleSearch) ([]*domain.Schedule, error)
	Update(ctx context.Context, id int64, s *domain.Schedule) (*domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

// ParkingLotRepository интерфейс репозитория парковок
type ParkingLotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
}

// TxManager менеджер транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
