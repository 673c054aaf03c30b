package parkinglots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkinglots/models"
)

// Service сервис управления парковками
type Service struct {
	lotRepo ParkingLotRepository
	logger  Logger
}

// NewService создает новый экземпляр сервиса парковок
func NewService(lotRepo ParkingLotRepository, logger Logger) *Service {
	return &Service{
		lotRepo: lotRepo,
		logger:  logger,
	}
}

// Create создает парковку
func (s *Service) Create(ctx context.Context, req *models.ParkingLotRequest) (*models.ParkingLotResponse, error) {
	s.logger.Info("Create: creating parking lot %q", req.Nombre)

	lot, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.lotRepo.Create(ctx, lot)
	if err != nil {
		return nil, s.mapRepositoryError("Create", err)
	}

	s.logger.Info("Create: parking lot id=%d created", created.ID)
	return models.FromDomainLot(created), nil
}

// GetByID возвращает парковку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ParkingLotResponse, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError("GetByID", err)
	}

	return models.FromDomainLot(lot), nil
}

// List возвращает все парковки
func (s *Service) List(ctx context.Context) ([]models.ParkingLotResponse, error) {
	lots, err := s.lotRepo.List(ctx)
	if err != nil {
		return nil, s.mapRepositoryError("List", err)
	}

	return models.FromDomainLots(lots), nil
}

// Search ищет парковки по критерию nombre, ubicacion, ciudad или capacidad
func (s *Service) Search(ctx context.Context, criterion, value string) ([]models.ParkingLotResponse, error) {
	search, err := domain.ParseParkingLotSearch(criterion, value)
	if err != nil {
		s.logger.Warn("Search: invalid criterion %q: %v", criterion, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	lots, err := s.lotRepo.Search(ctx, search)
	if err != nil {
		return nil, s.mapRepositoryError("Search", err)
	}

	return models.FromDomainLots(lots), nil
}

// Update заменяет данные парковки
func (s *Service) Update(ctx context.Context, id int64, req *models.ParkingLotRequest) (*models.ParkingLotResponse, error) {
	s.logger.Info("Update: updating parking lot id=%d", id)

	lot, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.lotRepo.Update(ctx, id, lot)
	if err != nil {
		return nil, s.mapRepositoryError("Update", err)
	}

	return models.FromDomainLot(updated), nil
}

// Delete удаляет парковку без записей
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting parking lot id=%d", id)

	if err := s.lotRepo.Delete(ctx, id); err != nil {
		return s.mapRepositoryError("Delete", err)
	}

	return nil
}

func toDomain(req *models.ParkingLotRequest) (*domain.ParkingLot, error) {
	name := strings.TrimSpace(req.Nombre)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxLotNameLength {
		return nil, fmt.Errorf("%w: nombre is longer than %d characters", ErrInvalidInput, domain.MaxLotNameLength)
	}

	if req.Capacidad <= 0 {
		return nil, fmt.Errorf("%w: capacidad must be positive", ErrInvalidInput)
	}

	days := domain.EveryDay
	if raw := strings.TrimSpace(req.DiasOperacion); raw != "" {
		parsed, err := domain.ParseDayRange(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: dias_operacion: %w", ErrInvalidInput, err)
		}
		days = parsed
	}

	return &domain.ParkingLot{
		Name:          name,
		Capacity:      req.Capacidad,
		Location:      strings.TrimSpace(req.Ubicacion),
		City:          strings.TrimSpace(req.Ciudad),
		OperatingDays: days,
	}, nil
}

func (s *Service) mapRepositoryError(op string, err error) error {
	switch {
	case errors.Is(err, lotRepo.ErrLotNotFound):
		s.logger.Warn("%s: parking lot not found", op)
		return ErrLotNotFound
	case errors.Is(err, lotRepo.ErrLotInUse):
		s.logger.Warn("%s: parking lot is in use", op)
		return ErrLotInUse
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
}
