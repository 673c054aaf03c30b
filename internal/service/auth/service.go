package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	controllerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/controller"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ParkingService/internal/service/auth/models"
)

// Service вход в систему и проверка токенов
type Service struct {
	userRepo       UserRepository
	controllerRepo ControllerRepository
	secret       []byte
	tokenTTL     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, controllerRepo ControllerRepository, secret string, tokenTTL time.Duration, logger Logger) *Service {
	return &Service{
		userRepo:       userRepo,
		controllerRepo: controllerRepo,
		secret:         []byte(secret),
		tokenTTL:       tokenTTL,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Login вход администратора или оператора по имени и паролю
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	name := strings.TrimSpace(req.Nombre)
	if name == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nombre and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown user %q", name)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to get user %q: %v", name, err)
		return nil, fmt.Errorf("%w: failed to get user: %w", ErrInternal, err)
	}

	if !user.Active {
		s.logger.Warn("Login: user id=%d is inactive", user.ID)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	principal := domain.Principal{ID: user.ID, Name: user.Name, Role: user.Role}
	token, err := s.issueToken(principal)
	if err != nil {
		s.logger.Error("Login: %v", err)
		return nil, err
	}

	s.logger.Info("Login: user id=%d logged in as %s", user.ID, user.Role)
	return models.FromPrincipal(principal, user.Email, token), nil
}

// LoginController вход контролера по имени и номеру документа
func (s *Service) LoginController(ctx context.Context, req *models.ControllerLoginRequest) (*models.LoginResponse, error) {
	name := strings.TrimSpace(req.Nombre)
	identification := strings.TrimSpace(req.Identificacion)
	if name == "" || identification == "" {
		return nil, fmt.Errorf("%w: nombre and identificacion are required", ErrInvalidInput)
	}

	controller, err := s.controllerRepo.GetByCredentials(ctx, name, identification)
	if err != nil {
		if errors.Is(err, controllerRepo.ErrControllerNotFound) {
			s.logger.Warn("LoginController: unknown controller %q", name)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("LoginController: failed to get controller %q: %v", name, err)
		return nil, fmt.Errorf("%w: failed to get controller: %w", ErrInternal, err)
	}

	if !controller.Active {
		s.logger.Warn("LoginController: controller id=%d is inactive", controller.ID)
		return nil, ErrInvalidCredentials
	}

	principal := domain.Principal{ID: controller.ID, Name: controller.Name, Role: domain.RoleController}
	token, err := s.issueToken(principal)
	if err != nil {
		s.logger.Error("LoginController: %v", err)
		return nil, err
	}

	s.logger.Info("LoginController: controller id=%d logged in", controller.ID)
	return models.FromPrincipal(principal, "", token), nil
}
