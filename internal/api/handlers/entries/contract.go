package entries

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/entries/models"
)

type EntriesService interface {
	GetByID(ctx context.Context, id int64) (*models.EntryResponse, error)
	List(ctx context.Context) ([]models.EntryResponse, error)
	Search(ctx context.Context, criterion, value string) ([]models.EntryResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
