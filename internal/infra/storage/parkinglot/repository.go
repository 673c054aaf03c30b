package parkinglot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"nombre",
	"capacidad",
	"ubicacion",
	"ciudad",
	"dias_operacion",
	"fecha_creacion",
}

// Repository репозиторий парковок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает парковку
func (r *Repository) Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parqueaderos").
		Columns("nombre", "capacidad", "ubicacion", "ciudad", "dias_operacion").
		Values(lot.Name, lot.Capacity, lot.Location, lot.City, lot.OperatingDays.String()).
		Suffix("RETURNING id, fecha_creacion").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&lot.ID, &lot.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return lot, nil
}

// GetByID получает парковку по ID.
// Внутри транзакции строка блокируется (FOR SHARE), чтобы вместимость
// не изменилась до конца проверки места.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("parqueaderos").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR SHARE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	lot, err := scanLot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan parking lot: %w", ErrScanRow, err)
	}

	return lot, nil
}

// List возвращает все парковки
func (r *Repository) List(ctx context.Context) ([]*domain.ParkingLot, error) {
	return r.query(ctx, "List", psqlbuilder.Select(columns...).From("parqueaderos").OrderBy("id ASC"))
}

// Search ищет парковки: текстовые поля по подстроке, вместимость точно
func (r *Repository) Search(ctx context.Context, search domain.ParkingLotSearch) ([]*domain.ParkingLot, error) {
	builder := psqlbuilder.Select(columns...).From("parqueaderos")

	switch search.Field {
	case domain.LotSearchByName:
		builder = builder.Where(squirrel.ILike{"nombre": domain.ContainsPattern(search.Value)})
	case domain.LotSearchByLocation:
		builder = builder.Where(squirrel.ILike{"ubicacion": domain.ContainsPattern(search.Value)})
	case domain.LotSearchByCity:
		builder = builder.Where(squirrel.ILike{"ciudad": domain.ContainsPattern(search.Value)})
	case domain.LotSearchByCapacity:
		builder = builder.Where(squirrel.Eq{"capacidad": search.Capacity})
	default:
		return nil, fmt.Errorf("%w: Search - unsupported field %q", ErrBuildQuery, search.Field)
	}

	return r.query(ctx, "Search", builder.OrderBy("id ASC"))
}

// Update перезаписывает поля парковки
func (r *Repository) Update(ctx context.Context, id int64, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parqueaderos").
		Set("nombre", lot.Name).
		Set("capacidad", lot.Capacity).
		Set("ubicacion", lot.Location).
		Set("ciudad", lot.City).
		Set("dias_operacion", lot.OperatingDays.String()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	updated, err := scanLot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет парковку. Парковку с записями удалить нельзя
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parqueaderos").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err, "") {
			return ErrLotInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLotNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.ParkingLot, error) {
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

	lots := make([]*domain.ParkingLot, 0)
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		lots = append(lots, lot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return lots, nil
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLot(row rowScanner) (*domain.ParkingLot, error) {
	var lot domain.ParkingLot
	var days string

	err := row.Scan(
		&lot.ID,
		&lot.Name,
		&lot.Capacity,
		&lot.Location,
		&lot.City,
		&days,
		&lot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Значения из старых данных, которые не разбираются, трактуем как "каждый день"
	lot.OperatingDays, err = domain.ParseDayRange(days)
	if err != nil {
		lot.OperatingDays = domain.EveryDay
	}

	return &lot, nil
}
