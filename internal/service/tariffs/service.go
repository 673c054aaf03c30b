package tariffs

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	tariffRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/tariff"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

// Service сервис управления тарифами
type Service struct {
	tariffRepo TariffRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(tariffRepo TariffRepository, logger Logger) *Service {
	return &Service{
		tariffRepo: tariffRepo,
		logger:     logger,
	}
}

// Create создает тариф
func (s *Service) Create(ctx context.Context, req *models.TariffRequest) (*models.TariffResponse, error) {
	s.logger.Info("Create: creating tariff %q", req.Nombre)

	tariff, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.tariffRepo.Create(ctx, tariff)
	if err != nil {
		return nil, s.mapRepositoryError("Create", err)
	}

	s.logger.Info("Create: tariff id=%d created", created.ID)
	return models.FromDomainTariff(created), nil
}

// GetByID возвращает тариф по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TariffResponse, error) {
	tariff, err := s.tariffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError("GetByID", err)
	}

	return models.FromDomainTariff(tariff), nil
}

// List возвращает все тарифы
func (s *Service) List(ctx context.Context) ([]models.TariffResponse, error) {
	list, err := s.tariffRepo.List(ctx)
	if err != nil {
		return nil, s.mapRepositoryError("List", err)
	}

	return models.FromDomainTariffs(list), nil
}

// Search ищет тарифы по критерию nombre, tipo_calculo или tipo_vehiculo
func (s *Service) Search(ctx context.Context, criterion, value string) ([]models.TariffResponse, error) {
	search, err := domain.ParseTariffSearch(criterion, value)
	if err != nil {
		s.logger.Warn("Search: invalid criterion %q: %v", criterion, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	list, err := s.tariffRepo.Search(ctx, search)
	if err != nil {
		return nil, s.mapRepositoryError("Search", err)
	}

	return models.FromDomainTariffs(list), nil
}

// Update полностью заменяет редактируемые поля тарифа
func (s *Service) Update(ctx context.Context, id int64, req *models.TariffRequest) (*models.TariffResponse, error) {
	s.logger.Info("Update: updating tariff id=%d", id)

	tariff, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.tariffRepo.Update(ctx, id, tariff)
	if err != nil {
		return nil, s.mapRepositoryError("Update", err)
	}

	return models.FromDomainTariff(updated), nil
}

// Delete удаляет тариф
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting tariff id=%d", id)

	if err := s.tariffRepo.Delete(ctx, id); err != nil {
		return s.mapRepositoryError("Delete", err)
	}

	return nil
}

func (s *Service) mapRepositoryError(op string, err error) error {
	switch {
	case errors.Is(err, tariffRepo.ErrTariffNotFound):
		s.logger.Warn("%s: tariff not found", op)
		return ErrTariffNotFound
	case errors.Is(err, tariffRepo.ErrLotNotFound):
		s.logger.Warn("%s: parking lot not found", op)
		return ErrLotNotFound
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
}
