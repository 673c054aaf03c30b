package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	reportRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/report"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

// Service отчеты по доходам и занятости
type Service struct {
	reportRepo ReportRepository
	lotRepo    ParkingLotRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(reportRepo ReportRepository, lotRepo ParkingLotRepository, logger Logger) *Service {
	return &Service{
		reportRepo: reportRepo,
		lotRepo:    lotRepo,
		logger:     logger,
	}
}

// RevenueByLot доходы по всем парковкам
func (s *Service) RevenueByLot(ctx context.Context) ([]models.LotRevenueResponse, error) {
	list, err := s.reportRepo.RevenueByLot(ctx)
	if err != nil {
		s.logger.Error("RevenueByLot: %v", err)
		return nil, fmt.Errorf("%w: revenue by lot: %w", ErrInternal, err)
	}

	result := make([]models.LotRevenueResponse, 0, len(list))
	for i := range list {
		result = append(result, *models.FromDomainLotRevenue(&list[i]))
	}
	return result, nil
}

// RevenueForLot доходы одной парковки
func (s *Service) RevenueForLot(ctx context.Context, lotID int64) (*models.LotRevenueResponse, error) {
	rev, err := s.reportRepo.RevenueForLot(ctx, lotID)
	if err != nil {
		if errors.Is(err, reportRepo.ErrLotNotFound) {
			s.logger.Warn("RevenueForLot: parking lot id=%d not found", lotID)
			return nil, ErrLotNotFound
		}
		s.logger.Error("RevenueForLot: lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: revenue for lot: %w", ErrInternal, err)
	}

	return models.FromDomainLotRevenue(rev), nil
}

// RevenueForPeriod доходы парковки по дням въезда, границы периода включительно (YYYY-MM-DD)
func (s *Service) RevenueForPeriod(ctx context.Context, lotID int64, from, to string) ([]models.DailyRevenueResponse, error) {
	fromDate, toDate, err := parsePeriod(from, to)
	if err != nil {
		s.logger.Warn("RevenueForPeriod: %v", err)
		return nil, err
	}

	if err := s.ensureLotExists(ctx, "RevenueForPeriod", lotID); err != nil {
		return nil, err
	}

	list, err := s.reportRepo.DailyRevenue(ctx, lotID, fromDate, toDate)
	if err != nil {
		s.logger.Error("RevenueForPeriod: lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: daily revenue: %w", ErrInternal, err)
	}

	return models.FromDomainDailyRevenue(list), nil
}

// RevenueByVehicle доходы парковки по типам ТС
func (s *Service) RevenueByVehicle(ctx context.Context, lotID int64) ([]models.VehicleRevenueResponse, error) {
	if err := s.ensureLotExists(ctx, "RevenueByVehicle", lotID); err != nil {
		return nil, err
	}

	list, err := s.reportRepo.RevenueByVehicle(ctx, lotID)
	if err != nil {
		s.logger.Error("RevenueByVehicle: lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: revenue by vehicle: %w", ErrInternal, err)
	}

	return models.FromDomainVehicleRevenue(list), nil
}

// Occupancy текущая занятость всех парковок
func (s *Service) Occupancy(ctx context.Context) ([]models.OccupancyResponse, error) {
	list, err := s.reportRepo.Occupancy(ctx)
	if err != nil {
		s.logger.Error("Occupancy: %v", err)
		return nil, fmt.Errorf("%w: occupancy: %w", ErrInternal, err)
	}

	return models.FromDomainOccupancy(list), nil
}

func (s *Service) ensureLotExists(ctx context.Context, op string, lotID int64) error {
	if _, err := s.lotRepo.GetByID(ctx, lotID); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("%s: parking lot id=%d not found", op, lotID)
			return ErrLotNotFound
		}
		s.logger.Error("%s: failed to get parking lot id=%d: %v", op, lotID, err)
		return fmt.Errorf("%w: get parking lot: %w", ErrInternal, err)
	}
	return nil
}

func parsePeriod(from, to string) (time.Time, time.Time, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha_inicio and fecha_fin are required", ErrInvalidInput)
	}

	fromDate, err := time.Parse(domain.DateFormat, from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha_inicio: %w", ErrInvalidInput, err)
	}
	toDate, err := time.Parse(domain.DateFormat, to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha_fin: %w", ErrInvalidInput, err)
	}

	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha_fin is before fecha_inicio", ErrInvalidInput)
	}

	return fromDate, toDate, nil
}
