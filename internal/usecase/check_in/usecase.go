package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	entryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/entry"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
)

// UseCase регистрация въезда транспортного средства
type UseCase struct {
	entryRepo    EntryRepository
	lotRepo      ParkingLotRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	entryRepo EntryRepository,
	lotRepo ParkingLotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		entryRepo:    entryRepo,
		lotRepo:      lotRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute регистрирует въезд.
// Проверки и вставка выполняются в сериализуемой транзакции; проигранную гонку
// за номер или место дополнительно ловят уникальные индексы.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckIn: plate=%s, vehicle=%s, lot=%d, controller=%d, space=%d",
		req.Plate, req.VehicleType, req.ParkingLotID, req.ControllerID, req.SpaceNumber)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckIn: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Entry

	// 2. Проверки и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Номер не должен быть на стоянке
		parked, err := uc.entryRepo.ExistsOpenByPlate(txCtx, req.Plate, 0)
		if err != nil {
			return fmt.Errorf("%w: failed to check plate: %w", ErrInternal, err)
		}
		if parked {
			uc.logger.Warn("CheckIn: plate %s already has an open entry", req.Plate)
			return ErrDuplicatePlate
		}

		// 2.2. Место должно быть свободно
		occupied, err := uc.entryRepo.ExistsOpenInSpace(txCtx, req.ParkingLotID, req.SpaceNumber, 0)
		if err != nil {
			return fmt.Errorf("%w: failed to check space: %w", ErrInternal, err)
		}
		if occupied {
			uc.logger.Warn("CheckIn: space %d in lot id=%d is occupied", req.SpaceNumber, req.ParkingLotID)
			return ErrSpaceOccupied
		}

		// 2.3. Парковка существует, место в пределах вместимости и есть свободные места
		lot, err := uc.lotRepo.GetByID(txCtx, req.ParkingLotID)
		if err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				uc.logger.Warn("CheckIn: parking lot id=%d not found", req.ParkingLotID)
				return ErrLotNotFound
			}
			return fmt.Errorf("%w: failed to get parking lot: %w", ErrInternal, err)
		}

		if err := uc.checkCapacity(txCtx, lot, req.SpaceNumber); err != nil {
			return err
		}

		// 2.4. Создаем запись
		created, err := uc.entryRepo.Create(txCtx, &domain.Entry{
			Plate:        req.Plate,
			VehicleType:  req.VehicleType,
			ParkingLotID: req.ParkingLotID,
			ControllerID: req.ControllerID,
			SpaceNumber:  req.SpaceNumber,
			CheckInTime:  uc.timeProvider.Now(),
			Status:       domain.EntryOpen,
		})
		if err != nil {
			return mapRepositoryError(err)
		}

		created.ParkingLotName = lot.Name
		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CheckIn: %v", err)
		} else {
			uc.logger.Warn("CheckIn: rejected: %v", err)
		}
		return nil, err
	}

	uc.metrics.ObserveCheckIn(string(result.VehicleType))
	uc.logger.Info("CheckIn: created entry id=%d for plate=%s", result.ID, result.Plate)

	return &Response{Entry: result}, nil
}

func (uc *UseCase) checkCapacity(ctx context.Context, lot *domain.ParkingLot, space int) error {
	if !lot.HasSpace(space) {
		uc.logger.Warn("CheckIn: space %d is out of range for lot id=%d (capacity=%d)", space, lot.ID, lot.Capacity)
		return ErrCapacityExceeded
	}

	count, err := uc.entryRepo.CountOpenInLot(ctx, lot.ID, 0)
	if err != nil {
		return fmt.Errorf("%w: failed to count open entries: %w", ErrInternal, err)
	}
	if count >= lot.Capacity {
		uc.logger.Warn("CheckIn: parking lot id=%d is full (%d/%d)", lot.ID, count, lot.Capacity)
		return ErrCapacityExceeded
	}

	return nil
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, entryRepo.ErrDuplicatePlate):
		return ErrDuplicatePlate
	case errors.Is(err, entryRepo.ErrSpaceOccupied):
		return ErrSpaceOccupied
	case errors.Is(err, entryRepo.ErrLotNotFound):
		return ErrLotNotFound
	case errors.Is(err, entryRepo.ErrControllerNotFound):
		return ErrControllerNotFound
	default:
		return fmt.Errorf("%w: failed to create entry: %w", ErrInternal, err)
	}
}
