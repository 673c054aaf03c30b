package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ParkingService/internal/service/users/models"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service сервис учетных записей администраторов и операторов
type Service struct {
	userRepo UserRepository
	cost     int
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		cost:     bcrypt.DefaultCost,
		logger:   logger,
	}
}

// Create создает пользователя с хешированным паролем
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Create: creating user %q", req.Nombre)

	name, err := validateName(req.Nombre)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	email, err := validateEmail(req.Email)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	role := domain.RoleOperator
	if strings.TrimSpace(req.Rol) != "" {
		role, err = parseRole(req.Rol)
		if err != nil {
			s.logger.Warn("Create: validation failed: %v", err)
			return nil, err
		}
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		s.logger.Error("Create: %v", err)
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	})
	if err != nil {
		return nil, s.mapRepositoryError("Create", err)
	}

	s.logger.Info("Create: user id=%d created as %s", created.ID, created.Role)
	return models.FromDomainUser(created), nil
}

// GetByID возвращает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError("GetByID", err)
	}

	return models.FromDomainUser(u), nil
}

// List возвращает всех пользователей
func (s *Service) List(ctx context.Context) ([]models.UserResponse, error) {
	list, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, s.mapRepositoryError("List", err)
	}

	return models.FromDomainUsers(list), nil
}

// Search ищет по nombre, email или rol
func (s *Service) Search(ctx context.Context, criterion, value string) ([]models.UserResponse, error) {
	search, err := domain.ParseUserSearch(criterion, value)
	if err != nil {
		s.logger.Warn("Search: invalid criterion %q: %v", criterion, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	list, err := s.userRepo.Search(ctx, search)
	if err != nil {
		return nil, s.mapRepositoryError("Search", err)
	}

	return models.FromDomainUsers(list), nil
}

// Update меняет переданные поля; новый пароль хешируется заново
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("Update: updating user id=%d", id)

	upd, err := s.toUpdate(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.userRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, s.mapRepositoryError("Update", err)
	}

	return models.FromDomainUser(updated), nil
}

// Delete удаляет пользователя
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting user id=%d", id)

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return s.mapRepositoryError("Delete", err)
	}

	return nil
}

// EnsureAdmin создает первого администратора, если пользователей еще нет.
// Возвращает true, если администратор создан
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, s.mapRepositoryError("EnsureAdmin", err)
	}
	if count > 0 {
		return false, nil
	}

	if name == "" || password == "" {
		s.logger.Warn("EnsureAdmin: no users and no bootstrap credentials configured")
		return false, nil
	}

	_, err = s.Create(ctx, &models.CreateUserRequest{
		Nombre:   name,
		Email:    email,
		Password: password,
		Rol:      string(domain.RoleAdmin),
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *Service) toUpdate(req *models.UpdateUserRequest) (domain.UserUpdate, error) {
	var upd domain.UserUpdate

	if req.Nombre != nil {
		name, err := validateName(*req.Nombre)
		if err != nil {
			return upd, err
		}
		upd.Name = &name
	}

	if req.Email != nil {
		email, err := validateEmail(*req.Email)
		if err != nil {
			return upd, err
		}
		upd.Email = &email
	}

	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return upd, err
		}
		hash, err := s.hash(*req.Password)
		if err != nil {
			return upd, err
		}
		upd.PasswordHash = &hash
	}

	if req.Rol != nil {
		role, err := parseRole(*req.Rol)
		if err != nil {
			return upd, err
		}
		upd.Role = &role
	}

	upd.Active = req.Activo
	return upd, nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: failed to hash password: %w", ErrInternal, err)
	}
	return string(hash), nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < minNameLength {
		return "", fmt.Errorf("%w: nombre must have at least %d characters", ErrInvalidInput, minNameLength)
	}
	return name, nil
}

func validateEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email %q", ErrInvalidInput, raw)
	}
	return email, nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

func parseRole(raw string) (domain.Role, error) {
	role := domain.Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.IsValid() {
		return "", fmt.Errorf("%w: unknown rol %q", ErrInvalidInput, raw)
	}
	return role, nil
}

func (s *Service) mapRepositoryError(op string, err error) error {
	switch {
	case errors.Is(err, userRepo.ErrUserNotFound):
		s.logger.Warn("%s: user not found", op)
		return ErrUserNotFound
	case errors.Is(err, userRepo.ErrDuplicateName):
		s.logger.Warn("%s: user name already taken", op)
		return ErrDuplicateName
	case errors.Is(err, userRepo.ErrDuplicateEmail):
		s.logger.Warn("%s: email already taken", op)
		return ErrDuplicateEmail
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
}
