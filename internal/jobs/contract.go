package jobs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type ReportRepository interface {
	ClosedBetween(ctx context.Context, from, to time.Time) (int, float64, error)
	StaleEntries(ctx context.Context, before time.Time) ([]domain.StaleEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
