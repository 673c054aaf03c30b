package calculate_tariff

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// UseCase подбор тарифа и расчет стоимости стоянки.
// Только читает тарифы.
type UseCase struct {
	tariffRepo TariffRepository
	location   *time.Location
	logger     Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс, в котором определяются день недели и время въезда.
func NewUseCase(tariffRepo TariffRepository, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		tariffRepo: tariffRepo,
		location:   location,
		logger:     logger,
	}
}

// Execute подбирает самый специфичный активный тариф и считает сумму
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CalculateTariff: validation failed: %v", err)
		return nil, err
	}

	checkIn := req.CheckIn.In(uc.location)
	query := domain.TariffQuery{
		VehicleType:  req.VehicleType,
		ParkingLotID: req.ParkingLotID,
		Day:          domain.WeekdayOf(checkIn),
		Time:         types.NewTimeString(checkIn),
	}

	uc.logger.Info("CalculateTariff: vehicle=%s, lot=%d, day=%s, time=%s",
		query.VehicleType, query.ParkingLotID, query.Day, query.Time)

	candidates, err := uc.tariffRepo.FindCandidates(ctx, query)
	if err != nil {
		uc.logger.Error("CalculateTariff: failed to find candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to find candidates: %w", ErrInternal, err)
	}

	tariff := selectMostSpecific(applicable(candidates, query))
	if tariff == nil {
		uc.logger.Warn("CalculateTariff: no applicable rate for vehicle=%s, lot=%d, day=%s, time=%s",
			query.VehicleType, query.ParkingLotID, query.Day, query.Time)
		return nil, ErrNoApplicableRate
	}

	e := computeElapsed(req.CheckIn, *req.CheckOut)
	amount, err := computeAmount(tariff.Mode, tariff.Price, e)
	if err != nil {
		uc.logger.Error("CalculateTariff: tariff id=%d has invalid mode %q", tariff.ID, tariff.Mode)
		return nil, err
	}

	uc.logger.Info("CalculateTariff: applied tariff id=%d (%s), amount=%.2f", tariff.ID, tariff.Mode, amount)

	return &Response{
		AppliedTariff:  tariff,
		ElapsedMinutes: e.minutes,
		ElapsedHours:   e.hours,
		ElapsedDays:    e.days,
		TotalAmount:    amount,
	}, nil
}
