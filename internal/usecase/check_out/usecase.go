package check_out

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	entryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/entry"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/calculate_tariff"
)

const (
	msgCharged   = "Salida registrada. Monto cobrado: %.2f"
	msgNoCharge  = "Salida registrada sin cobro: %s"
	reasonNoRate = "no se encontró una tarifa aplicable"
	reasonMode   = "el tipo de cálculo de la tarifa no es válido"
	reasonFailed = "no fue posible calcular la tarifa"
)

// UseCase регистрация выезда с расчетом суммы
type UseCase struct {
	entryRepo    EntryRepository
	calculator   TariffCalculator
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(entryRepo EntryRepository, calculator TariffCalculator, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		entryRepo:    entryRepo,
		calculator:   calculator,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute закрывает открытую запись.
// Если тариф подобрать не удалось, запись все равно закрывается с суммой 0.
// Закрытие условное, поэтому из двух параллельных выездов успешен только один.
func (uc *UseCase) Execute(ctx context.Context, entryID int64) (*Response, error) {
	uc.logger.Info("CheckOut: entry=%d", entryID)

	if entryID <= 0 {
		return nil, fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}

	// 1. Получаем запись
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, entryRepo.ErrEntryNotFound) {
			uc.logger.Warn("CheckOut: entry id=%d not found", entryID)
			return nil, ErrEntryNotFound
		}
		uc.logger.Error("CheckOut: failed to get entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: failed to get entry: %w", ErrInternal, err)
	}

	if entry.IsClosed() {
		uc.logger.Warn("CheckOut: entry id=%d is already closed", entryID)
		return nil, ErrAlreadyClosed
	}

	// 2. Рассчитываем сумму
	now := uc.timeProvider.Now()
	resp := &Response{}
	amount := 0.0

	calc, err := uc.calculator.Execute(ctx, &calculate_tariff.Request{
		VehicleType:  entry.VehicleType,
		ParkingLotID: entry.ParkingLotID,
		CheckIn:      entry.CheckInTime,
		CheckOut:     &now,
	})
	if err != nil {
		reason, label := noChargeReason(err)
		uc.logger.Warn("CheckOut: entry id=%d closes without charge: %v", entryID, err)
		uc.metrics.ObserveTariffError(label)
		resp.Message = fmt.Sprintf(msgNoCharge, reason)
	} else {
		amount = calc.TotalAmount
		resp.ChargeComputed = true
		resp.AppliedTariff = calc.AppliedTariff
		resp.Message = fmt.Sprintf(msgCharged, amount)
	}

	// 3. Закрываем запись
	if err := uc.entryRepo.Close(ctx, entryID, now, amount); err != nil {
		if errors.Is(err, entryRepo.ErrEntryNotOpen) {
			uc.logger.Warn("CheckOut: entry id=%d was closed concurrently", entryID)
			return nil, ErrAlreadyClosed
		}
		uc.logger.Error("CheckOut: failed to close entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: failed to close entry: %w", ErrInternal, err)
	}

	entry.Status = domain.EntryClosed
	entry.CheckOutTime = &now
	entry.ChargedAmount = amount
	resp.Entry = entry

	uc.metrics.ObserveCheckOut(string(entry.VehicleType), resp.ChargeComputed, amount)
	uc.logger.Info("CheckOut: entry id=%d closed, amount=%.2f", entryID, amount)

	return resp, nil
}

// noChargeReason текст для клиента и метка для метрики
func noChargeReason(err error) (string, string) {
	switch {
	case errors.Is(err, calculate_tariff.ErrNoApplicableRate):
		return reasonNoRate, "no_rate"
	case errors.Is(err, calculate_tariff.ErrInvalidCalculationMode):
		return reasonMode, "invalid_mode"
	default:
		return reasonFailed, "internal"
	}
}
