package tariff

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

const lotForeignKey = "tarifas_parqueadero_id_fkey"

// columns порядок колонок совпадает с scanTariff
var columns = []string{
	"t.id",
	"t.nombre",
	"t.descripcion",
	"t.tipo_calculo",
	"t.tipo_vehiculo",
	"t.parqueadero_id",
	"p.nombre",
	"t.dia_semana",
	"t.hora_inicio",
	"t.hora_fin",
	"t.precio",
	"t.activo",
	"t.fecha_creacion",
	"t.fecha_actualizacion",
}

// Repository репозиторий тарифов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectTariffs() squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("tarifas t").
		LeftJoin("parqueaderos p ON p.id = t.parqueadero_id")
}

// Create создает тариф
func (r *Repository) Create(ctx context.Context, t *domain.Tariff) (*domain.Tariff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tarifas").
		Columns(
			"nombre",
			"descripcion",
			"tipo_calculo",
			"tipo_vehiculo",
			"parqueadero_id",
			"dia_semana",
			"hora_inicio",
			"hora_fin",
			"precio",
			"activo",
		).
		Values(
			t.Name,
			t.Description,
			t.Mode,
			t.VehicleType,
			t.ParkingLotID,
			t.DayOfWeek,
			t.StartTime,
			t.EndTime,
			t.Price,
			t.Active,
		).
		Suffix("RETURNING id, fecha_creacion").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err, lotForeignKey) {
			return nil, ErrLotNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return t, nil
}

// GetByID получает тариф по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tariff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectTariffs().
		Where(squirrel.Eq{"t.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	t, err := scanTariff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTariffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan tariff: %w", ErrScanRow, err)
	}

	return t, nil
}

// List возвращает все тарифы
func (r *Repository) List(ctx context.Context) ([]*domain.Tariff, error) {
	return r.query(ctx, "List", selectTariffs().OrderBy("t.id ASC"))
}

// Search ищет тарифы по критерию: имя по подстроке, остальные поля точно
func (r *Repository) Search(ctx context.Context, search domain.TariffSearch) ([]*domain.Tariff, error) {
	builder := selectTariffs()

	switch search.Field {
	case domain.TariffSearchByName:
		builder = builder.Where(squirrel.ILike{"t.nombre": domain.ContainsPattern(search.Value)})
	case domain.TariffSearchByMode:
		builder = builder.Where(squirrel.Eq{"t.tipo_calculo": search.Value})
	case domain.TariffSearchByVehicleType:
		builder = builder.Where(squirrel.Eq{"t.tipo_vehiculo": search.Value})
	default:
		return nil, fmt.Errorf("%w: Search - unsupported field %q", ErrBuildQuery, search.Field)
	}

	return r.query(ctx, "Search", builder.OrderBy("t.id ASC"))
}

// FindCandidates возвращает активные тарифы, применимые к запросу:
// тип ТС (точно или 'todos'), парковка (точно или NULL),
// день недели (точно или 'Todos') и окно времени (нет окна или start <= HH:MM < end).
// Выбор самого специфичного делает вызывающая сторона.
func (r *Repository) FindCandidates(ctx context.Context, q domain.TariffQuery) ([]*domain.Tariff, error) {
	at := q.Time.String()

	builder := selectTariffs().
		Where(squirrel.Eq{"t.activo": true}).
		Where(squirrel.Eq{"t.tipo_vehiculo": []string{string(q.VehicleType), string(domain.VehicleAny)}}).
		Where(squirrel.Or{
			squirrel.Eq{"t.parqueadero_id": q.ParkingLotID},
			squirrel.Eq{"t.parqueadero_id": nil},
		}).
		Where(squirrel.Eq{"t.dia_semana": []string{string(q.Day), string(domain.AnyDay)}}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"t.hora_inicio": nil},
				squirrel.Eq{"t.hora_fin": nil},
			},
			squirrel.Expr("(CAST(? AS TIME) >= t.hora_inicio AND CAST(? AS TIME) < t.hora_fin)", at, at),
		}).
		OrderBy("t.id ASC")

	return r.query(ctx, "FindCandidates", builder)
}

// Update перезаписывает редактируемые поля тарифа
func (r *Repository) Update(ctx context.Context, id int64, t *domain.Tariff) (*domain.Tariff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tarifas").
		Set("nombre", t.Name).
		Set("descripcion", t.Description).
		Set("tipo_calculo", t.Mode).
		Set("tipo_vehiculo", t.VehicleType).
		Set("parqueadero_id", t.ParkingLotID).
		Set("dia_semana", t.DayOfWeek).
		Set("hora_inicio", t.StartTime).
		Set("hora_fin", t.EndTime).
		Set("precio", t.Price).
		Set("activo", t.Active).
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
		return nil, ErrTariffNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет тариф
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("tarifas").
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
		return ErrTariffNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Tariff, error) {
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

	tariffs := make([]*domain.Tariff, 0)
	for rows.Next() {
		t, err := scanTariff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		tariffs = append(tariffs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return tariffs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTariff(row rowScanner) (*domain.Tariff, error) {
	var t domain.Tariff
	var updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Mode,
		&t.VehicleType,
		&t.ParkingLotID,
		&t.ParkingLotName,
		&t.DayOfWeek,
		&t.StartTime,
		&t.EndTime,
		&t.Price,
		&t.Active,
		&t.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.Time
	}

	return &t, nil
}
