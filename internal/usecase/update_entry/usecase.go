package update_entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	entryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/entry"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
)

// UseCase частичное редактирование записи о въезде
type UseCase struct {
	entryRepo EntryRepository
	lotRepo   ParkingLotRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	entryRepo EntryRepository,
	lotRepo ParkingLotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		entryRepo: entryRepo,
		lotRepo:   lotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute применяет заданные поля к записи.
// Проверки номера и места повторяются так же, как при въезде, без учета самой записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateEntry: entry=%d", req.EntryID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateEntry: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Entry

	// 2. Чтение, проверки и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.entryRepo.GetByID(txCtx, req.EntryID)
		if err != nil {
			if errors.Is(err, entryRepo.ErrEntryNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("%w: failed to get entry: %w", ErrInternal, err)
		}

		merged := *current
		req.Update.ApplyTo(&merged)

		if err := uc.checkConflicts(txCtx, req.Update, current, &merged); err != nil {
			return err
		}

		updated, err := uc.entryRepo.Update(txCtx, current.ID, &merged)
		if err != nil {
			return mapRepositoryError(err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("UpdateEntry: entry id=%d: %v", req.EntryID, err)
		} else {
			uc.logger.Warn("UpdateEntry: entry id=%d rejected: %v", req.EntryID, err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateEntry: entry id=%d updated", result.ID)

	return &Response{Entry: result}, nil
}

// checkConflicts проверяет номер, место, парковку и вместимость после слияния
func (uc *UseCase) checkConflicts(ctx context.Context, u domain.EntryUpdate, current, merged *domain.Entry) error {
	if u.Plate != nil {
		parked, err := uc.entryRepo.ExistsOpenByPlate(ctx, merged.Plate, current.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to check plate: %w", ErrInternal, err)
		}
		if parked {
			return ErrDuplicatePlate
		}
	}

	if !u.TouchesSpace() {
		return nil
	}

	occupied, err := uc.entryRepo.ExistsOpenInSpace(ctx, merged.ParkingLotID, merged.SpaceNumber, current.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to check space: %w", ErrInternal, err)
	}
	if occupied {
		return ErrSpaceOccupied
	}

	lot, err := uc.lotRepo.GetByID(ctx, merged.ParkingLotID)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			return ErrLotNotFound
		}
		return fmt.Errorf("%w: failed to get parking lot: %w", ErrInternal, err)
	}

	if !lot.HasSpace(merged.SpaceNumber) {
		return fmt.Errorf("%w: space %d, capacity %d", ErrCapacityExceeded, merged.SpaceNumber, lot.Capacity)
	}

	// Закрытая запись место не занимает
	if !current.IsOpen() || merged.ParkingLotID == current.ParkingLotID {
		return nil
	}

	count, err := uc.entryRepo.CountOpenInLot(ctx, lot.ID, current.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to count open entries: %w", ErrInternal, err)
	}
	if count >= lot.Capacity {
		return fmt.Errorf("%w: lot id=%d is full", ErrCapacityExceeded, lot.ID)
	}

	return nil
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, entryRepo.ErrEntryNotFound):
		return ErrEntryNotFound
	case errors.Is(err, entryRepo.ErrDuplicatePlate):
		return ErrDuplicatePlate
	case errors.Is(err, entryRepo.ErrSpaceOccupied):
		return ErrSpaceOccupied
	case errors.Is(err, entryRepo.ErrLotNotFound):
		return ErrLotNotFound
	case errors.Is(err, entryRepo.ErrControllerNotFound):
		return ErrControllerNotFound
	default:
		return fmt.Errorf("%w: failed to update entry: %w", ErrInternal, err)
	}
}
