package check_out

import (
	"context"

	checkOut "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
)

type CheckOutUseCase interface {
	Execute(ctx context.Context, entryID int64) (*checkOut.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
