package schedules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	scheduleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ParkingService/internal/service/schedules/models"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Service сервис расписаний работы парковок
type Service struct {
	scheduleRepo ScheduleRepository
	lotRepo      ParkingLotRepository
	txManager    TxManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, lotRepo ParkingLotRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		lotRepo:      lotRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает расписание, если оно не пересекается с другими в тот же день
func (s *Service) Create(ctx context.Context, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: schedule for lot id=%d, day=%s", req.ParqueaderoID, req.Dia)

	schedule, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Schedule
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.checkPlacement(txCtx, "Create", schedule); err != nil {
			return err
		}

		created, err = s.scheduleRepo.Create(txCtx, schedule)
		if err != nil {
			return s.mapRepositoryError("Create", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.mapRepositoryError("Create", err)
	}

	s.logger.Info("Create: schedule id=%d created", created.ID)
	return models.FromDomainSchedule(created), nil
}

// GetByID возвращает расписание по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError("GetByID", err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// List возвращает все расписания
func (s *Service) List(ctx context.Context) ([]models.ScheduleResponse, error) {
	list, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return nil, s.mapRepositoryError("List", err)
	}

	return models.FromDomainSchedules(list), nil
}

// Search ищет расписания по dia, parqueadero, hora_inicio или hora_fin
func (s *Service) Search(ctx context.Context, criterion, value string) ([]models.ScheduleResponse, error) {
	search, err := domain.ParseScheduleSearch(criterion, value)
	if err != nil {
		s.logger.Warn("Search: invalid criterion %q: %v", criterion, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	list, err := s.scheduleRepo.Search(ctx, search)
	if err != nil {
		return nil, s.mapRepositoryError("Search", err)
	}

	return models.FromDomainSchedules(list), nil
}

// Update заменяет расписание с той же проверкой пересечений (само себя не считает)
func (s *Service) Update(ctx context.Context, id int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule id=%d", id)

	schedule, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	schedule.ID = id

	var updated *domain.Schedule
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.scheduleRepo.GetByID(txCtx, id); err != nil {
			return s.mapRepositoryError("Update", err)
		}

		if err := s.checkPlacement(txCtx, "Update", schedule); err != nil {
			return err
		}

		updated, err = s.scheduleRepo.Update(txCtx, id, schedule)
		if err != nil {
			return s.mapRepositoryError("Update", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.mapRepositoryError("Update", err)
	}

	return models.FromDomainSchedule(updated), nil
}

// Delete удаляет расписание
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting schedule id=%d", id)

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return s.mapRepositoryError("Delete", err)
	}

	return nil
}

// checkPlacement парковка существует, работает в этот день и время не занято
func (s *Service) checkPlacement(ctx context.Context, op string, schedule *domain.Schedule) error {
	lot, err := s.lotRepo.GetByID(ctx, schedule.ParkingLotID)
	if err != nil {
		return s.mapRepositoryError(op, err)
	}

	if !lot.OperatingDays.Contains(schedule.Day) {
		s.logger.Warn("%s: lot id=%d does not operate on %s (%s)", op, lot.ID, schedule.Day, lot.OperatingDays)
		return fmt.Errorf("%w: %s", ErrDayNotOperating, lot.OperatingDays)
	}

	existing, err := s.scheduleRepo.ListForLotDay(ctx, schedule.ParkingLotID, schedule.Day)
	if err != nil {
		return s.mapRepositoryError(op, err)
	}

	if other := schedule.FindOverlap(existing); other != nil {
		s.logger.Warn("%s: overlaps schedule id=%d (%s-%s)", op, other.ID, other.Opens, other.Closes)
		return &ConflictError{Opens: other.Opens.String(), Closes: other.Closes.String()}
	}

	return nil
}

func toDomain(req *models.ScheduleRequest) (*domain.Schedule, error) {
	if req.ParqueaderoID <= 0 {
		return nil, fmt.Errorf("%w: parqueadero_id is required", ErrInvalidInput)
	}

	day, err := domain.ParseWeekday(strings.TrimSpace(req.Dia))
	if err != nil {
		return nil, fmt.Errorf("%w: dia: %w", ErrInvalidInput, err)
	}

	opens, err := types.NewTimeStringFromString(strings.TrimSpace(req.HoraInicio))
	if err != nil {
		return nil, fmt.Errorf("%w: hora_inicio: %w", ErrInvalidInput, err)
	}
	closes, err := types.NewTimeStringFromString(strings.TrimSpace(req.HoraFin))
	if err != nil {
		return nil, fmt.Errorf("%w: hora_fin: %w", ErrInvalidInput, err)
	}

	if !opens.IsBefore(closes) {
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, opens, closes)
	}

	active := true
	if req.Activo != nil {
		active = *req.Activo
	}

	return &domain.Schedule{
		ParkingLotID: req.ParqueaderoID,
		Day:          day,
		Opens:        opens,
		Closes:       closes,
		Active:       active,
	}, nil
}

func (s *Service) mapRepositoryError(op string, err error) error {
	switch {
	case errors.Is(err, ErrScheduleNotFound), errors.Is(err, ErrLotNotFound),
		errors.Is(err, ErrDayNotOperating), errors.Is(err, ErrScheduleConflict),
		errors.Is(err, ErrInternal):
		// уже переведена внутри транзакции
		return err
	case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
		s.logger.Warn("%s: schedule not found", op)
		return ErrScheduleNotFound
	case errors.Is(err, scheduleRepo.ErrLotNotFound), errors.Is(err, lotRepo.ErrLotNotFound):
		s.logger.Warn("%s: parking lot not found", op)
		return ErrLotNotFound
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
}
