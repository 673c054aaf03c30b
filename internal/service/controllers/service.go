package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	controllerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/controller"
	"github.com/m04kA/SMC-ParkingService/internal/service/controllers/models"
)

// Service сервис управления контролерами
type Service struct {
	controllerRepo ControllerRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса контролеров
func NewService(controllerRepo ControllerRepository, logger Logger) *Service {
	return &Service{
		controllerRepo: controllerRepo,
		logger:         logger,
	}
}

// Create регистрирует контролера
func (s *Service) Create(ctx context.Context, req *models.ControllerRequest) (*models.ControllerResponse, error) {
	s.logger.Info("Create: registering controller %q", req.Nombre)

	controller, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	identification := strings.TrimSpace(req.Identificacion)
	if identification == "" {
		s.logger.Warn("Create: identification is missing")
		return nil, fmt.Errorf("%w: identificacion is required", ErrInvalidInput)
	}
	controller.Identification = identification

	created, err := s.controllerRepo.Create(ctx, controller)
	if err != nil {
		return nil, s.mapRepositoryError("Create", err)
	}

	s.logger.Info("Create: controller id=%d registered", created.ID)
	return models.FromDomainController(created), nil
}

// GetByID возвращает контролера по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ControllerResponse, error) {
	controller, err := s.controllerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError("GetByID", err)
	}

	return models.FromDomainController(controller), nil
}

// List возвращает всех контролеров
func (s *Service) List(ctx context.Context) ([]models.ControllerResponse, error) {
	list, err := s.controllerRepo.List(ctx)
	if err != nil {
		return nil, s.mapRepositoryError("List", err)
	}

	return models.FromDomainControllers(list), nil
}

// Search ищет по nombre, identificacion, rol или activo
func (s *Service) Search(ctx context.Context, criterion, value string) ([]models.ControllerResponse, error) {
	search, err := domain.ParseControllerSearch(criterion, value)
	if err != nil {
		s.logger.Warn("Search: invalid criterion %q: %v", criterion, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	list, err := s.controllerRepo.Search(ctx, search)
	if err != nil {
		return nil, s.mapRepositoryError("Search", err)
	}

	return models.FromDomainControllers(list), nil
}

// Update меняет имя, телефон, роль и активность
func (s *Service) Update(ctx context.Context, id int64, req *models.ControllerRequest) (*models.ControllerResponse, error) {
	s.logger.Info("Update: updating controller id=%d", id)

	controller, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.controllerRepo.Update(ctx, id, controller)
	if err != nil {
		return nil, s.mapRepositoryError("Update", err)
	}

	return models.FromDomainController(updated), nil
}

// Delete удаляет контролера и возвращает удаленную запись
func (s *Service) Delete(ctx context.Context, id int64) (*models.ControllerResponse, error) {
	s.logger.Info("Delete: deleting controller id=%d", id)

	controller, err := s.controllerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError("Delete", err)
	}

	if err := s.controllerRepo.Delete(ctx, id); err != nil {
		return nil, s.mapRepositoryError("Delete", err)
	}

	return models.FromDomainController(controller), nil
}

func toDomain(req *models.ControllerRequest) (*domain.Controller, error) {
	name := strings.TrimSpace(req.Nombre)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre is required", ErrInvalidInput)
	}

	role := domain.ControllerOperator
	if raw := strings.TrimSpace(req.Rol); raw != "" {
		role = domain.ControllerRole(strings.ToLower(raw))
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown rol %q", ErrInvalidInput, req.Rol)
		}
	}

	var phone *string
	if req.Telefono != nil {
		if trimmed := strings.TrimSpace(*req.Telefono); trimmed != "" {
			phone = &trimmed
		}
	}

	active := true
	if req.Activo != nil {
		active = *req.Activo
	}

	return &domain.Controller{
		Name:   name,
		Phone:  phone,
		Role:   role,
		Active: active,
	}, nil
}

func (s *Service) mapRepositoryError(op string, err error) error {
	switch {
	case errors.Is(err, controllerRepo.ErrControllerNotFound):
		s.logger.Warn("%s: controller not found", op)
		return ErrControllerNotFound
	case errors.Is(err, controllerRepo.ErrDuplicateIdentification):
		s.logger.Warn("%s: identification already registered", op)
		return ErrDuplicateIdentification
	case errors.Is(err, controllerRepo.ErrControllerInUse):
		s.logger.Warn("%s: controller has entries", op)
		return ErrControllerInUse
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
}
