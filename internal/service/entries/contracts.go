package entries

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// EntryRepository интерфейс репозитория записей о въезде
type EntryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)
	List(ctx context.Context) ([]*domain.Entry, error)
	Search(ctx context.Context, search domain.EntrySearch) ([]*domain.Entry, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
