package schedules

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/schedules/models"
)

type SchedulesService interface {
	Create(ctx context.Context, req *models.ScheduleRequest) (*models.ScheduleResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ScheduleResponse, error)
	List(ctx context.Context) ([]models.ScheduleResponse, error)
	Search(ctx context.Context, criterion, value string) ([]models.ScheduleResponse, error)
	Update(ctx context.Context, id int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
