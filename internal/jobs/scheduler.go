package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const runTimeout = 30 * time.Second

// Config расписание задач (стандартные 5-польные cron-выражения)
type Config struct {
	RevenueSnapshot string
	StaleEntries    string
	StaleAfter      time.Duration
}

// Scheduler фоновые отчеты по расписанию
type Scheduler struct {
	cron         *cron.Cron
	reportRepo   ReportRepository
	location     *time.Location
	staleAfter   time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewScheduler регистрирует задачи. Пустое выражение отключает задачу
func NewScheduler(cfg Config, reportRepo ReportRepository, location *time.Location, logger Logger) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}

	s := &Scheduler{
		reportRepo:   reportRepo,
		location:     location,
		staleAfter:   cfg.StaleAfter,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}

	cronLogger := &cronLogger{logger: logger}
	s.cron = cron.New(
		cron.WithLocation(location),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	if cfg.RevenueSnapshot != "" {
		if _, err := s.cron.AddFunc(cfg.RevenueSnapshot, s.withTimeout(s.RevenueSnapshot)); err != nil {
			return nil, fmt.Errorf("jobs: invalid revenue snapshot schedule %q: %w", cfg.RevenueSnapshot, err)
		}
	}
	if cfg.StaleEntries != "" {
		if _, err := s.cron.AddFunc(cfg.StaleEntries, s.withTimeout(s.ReportStaleEntries)); err != nil {
			return nil, fmt.Errorf("jobs: invalid stale entries schedule %q: %w", cfg.StaleEntries, err)
		}
	}

	return s, nil
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.logger.Info("Jobs: scheduler started with %d jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения текущих задач
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Jobs: scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Jobs: scheduler stop timed out")
	}
}

func (s *Scheduler) withTimeout(job func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := job(ctx); err != nil {
			s.logger.Error("Jobs: %v", err)
		}
	}
}

// RevenueSnapshot логирует выручку по выездам за текущие сутки
func (s *Scheduler) RevenueSnapshot(ctx context.Context) error {
	now := s.timeProvider.Now().In(s.location)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	count, revenue, err := s.reportRepo.ClosedBetween(ctx, dayStart, now)
	if err != nil {
		return fmt.Errorf("revenue snapshot: %w", err)
	}

	s.logger.Info("Jobs: revenue snapshot %s: %d exits, revenue=%.2f",
		dayStart.Format("2006-01-02"), count, domain.RoundMoney(revenue))
	return nil
}

// ReportStaleEntries предупреждает о записях, открытых дольше staleAfter
func (s *Scheduler) ReportStaleEntries(ctx context.Context) error {
	now := s.timeProvider.Now()

	stale, err := s.reportRepo.StaleEntries(ctx, now.Add(-s.staleAfter))
	if err != nil {
		return fmt.Errorf("stale entries: %w", err)
	}

	for _, e := range stale {
		s.logger.Warn("Jobs: entry id=%d plate=%s lot=%d open for %s",
			e.EntryID, e.Plate, e.ParkingLotID, now.Sub(e.CheckInTime).Truncate(time.Minute))
	}
	if len(stale) == 0 {
		s.logger.Info("Jobs: no stale entries")
	}
	return nil
}

// cronLogger адаптер printf-логгера к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: %s %v", msg, keysAndValues)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
