package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const lotForeignKey = "horarios_parqueadero_id_fkey"

// Repository репозиторий расписаний работы парковок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectSchedules() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"h.id",
		"h.parqueadero_id",
		"p.nombre",
		"h.dia_semana",
		"h.hora_apertura",
		"h.hora_cierre",
		"h.activo",
		"h.fecha_creacion",
	).
		From("horarios h").
		Join("parqueaderos p ON p.id = h.parqueadero_id")
}

// Create создает расписание
func (r *Repository) Create(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("horarios").
		Columns("parqueadero_id", "dia_semana", "hora_apertura", "hora_cierre", "activo").
		Values(s.ParkingLotID, s.Day, s.Opens, s.Closes, s.Active).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if pgerr.IsForeignKeyViolation(err, lotForeignKey) {
			return nil, ErrLotNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return r.GetByID(ctx, id)
}

// GetByID получает расписание по ID вместе с названием парковки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSchedules().
		Where(squirrel.Eq{"h.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %w", ErrScanRow, err)
	}

	return s, nil
}

// List возвращает все расписания
func (r *Repository) List(ctx context.Context) ([]*domain.Schedule, error) {
	return r.query(ctx, "List", selectSchedules().OrderBy("h.id ASC"))
}

// ListForLotDay возвращает расписания парковки на день недели
func (r *Repository) ListForLotDay(ctx context.Context, lotID int64, day domain.Weekday) ([]*domain.Schedule, error) {
	builder := selectSchedules().
		Where(squirrel.Eq{"h.parqueadero_id": lotID, "h.dia_semana": day}).
		OrderBy("h.hora_apertura ASC")

	return r.query(ctx, "ListForLotDay", builder)
}

// Search ищет расписания: день и парковка по подстроке, время точно до минуты
func (r *Repository) Search(ctx context.Context, search domain.ScheduleSearch) ([]*domain.Schedule, error) {
	builder := selectSchedules()

	switch search.Field {
	case domain.ScheduleSearchByDay:
		builder = builder.Where(squirrel.ILike{"h.dia_semana": domain.ContainsPattern(search.Value)})
	case domain.ScheduleSearchByParkingLot:
		builder = builder.Where(squirrel.ILike{"p.nombre": domain.ContainsPattern(search.Value)})
	case domain.ScheduleSearchByOpens:
		builder = builder.Where(squirrel.Expr("to_char(h.hora_apertura, 'HH24:MI') = ?", search.Value))
	case domain.ScheduleSearchByCloses:
		builder = builder.Where(squirrel.Expr("to_char(h.hora_cierre, 'HH24:MI') = ?", search.Value))
	default:
		return nil, fmt.Errorf("%w: Search - unsupported field %q", ErrBuildQuery, search.Field)
	}

	return r.query(ctx, "Search", builder.OrderBy("h.id ASC"))
}

// Update перезаписывает расписание
func (r *Repository) Update(ctx context.Context, id int64, s *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("horarios").
		Set("parqueadero_id", s.ParkingLotID).
		Set("dia_semana", s.Day).
		Set("hora_apertura", s.Opens).
		Set("hora_cierre", s.Closes).
		Set("activo", s.Active).
		Set("fecha_actualizacion", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err, lotForeignKey) {
			return nil, ErrLotNotFound
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrScheduleNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет расписание
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("horarios").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return schedules, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var s domain.Schedule

	err := row.Scan(
		&s.ID,
		&s.ParkingLotID,
		&s.ParkingLotName,
		&s.Day,
		&s.Opens,
		&s.Closes,
		&s.Active,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
