package entries

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	entryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/entry"
	"github.com/m04kA/SMC-ParkingService/internal/service/entries/models"
)

// Service сервис чтения и удаления записей о въезде
type Service struct {
	entryRepo EntryRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(entryRepo EntryRepository, logger Logger) *Service {
	return &Service{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// GetByID возвращает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EntryResponse, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entryRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetByID: failed to get entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get entry: %w", ErrInternal, err)
	}

	return models.FromDomainEntry(entry), nil
}

// List возвращает все записи, новые первыми
func (s *Service) List(ctx context.Context) ([]models.EntryResponse, error) {
	list, err := s.entryRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to list entries: %v", err)
		return nil, fmt.Errorf("%w: failed to list entries: %w", ErrInternal, err)
	}

	return models.FromDomainEntries(list), nil
}

// Search ищет записи по критерию placa, tipo_vehiculo или estado
func (s *Service) Search(ctx context.Context, criterion, value string) ([]models.EntryResponse, error) {
	search, err := domain.ParseEntrySearch(criterion, value)
	if err != nil {
		s.logger.Warn("Search: invalid criterion %q: %v", criterion, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	list, err := s.entryRepo.Search(ctx, search)
	if err != nil {
		s.logger.Error("Search: failed to search entries by %s: %v", search.Field, err)
		return nil, fmt.Errorf("%w: failed to search entries: %w", ErrInternal, err)
	}

	return models.FromDomainEntries(list), nil
}

// Delete удаляет запись
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting entry id=%d", id)

	if err := s.entryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, entryRepo.ErrEntryNotFound) {
			s.logger.Warn("Delete: entry id=%d not found", id)
			return ErrEntryNotFound
		}
		s.logger.Error("Delete: failed to delete entry id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to delete entry: %w", ErrInternal, err)
	}

	return nil
}
