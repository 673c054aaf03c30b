package entry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const (
	plateIndex           = "ux_entradas_placa_activa"
	spaceIndex           = "ux_entradas_espacio_activo"
	lotForeignKey        = "entradas_parqueadero_id_fkey"
	controllerForeignKey = "entradas_controlador_id_fkey"
)

// columns порядок колонок совпадает с scanEntry
var columns = []string{
	"e.id",
	"e.placa",
	"e.tipo_vehiculo",
	"e.parqueadero_id",
	"e.controlador_id",
	"e.espacio_asignado",
	"e.hora_ingreso",
	"e.hora_salida",
	"e.estado",
	"e.monto_cobrado",
	"COALESCE(p.nombre, '')",
	"COALESCE(c.nombre, '')",
	"e.fecha_creacion",
	"e.fecha_actualizacion",
}

// Repository репозиторий записей о въезде
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectEntries() squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("entradas e").
		LeftJoin("parqueaderos p ON p.id = e.parqueadero_id").
		LeftJoin("controladores c ON c.id = e.controlador_id")
}

// Create создает запись. Гонка за номер или место, проигранная на уникальном
// индексе, возвращается как ErrDuplicatePlate / ErrSpaceOccupied.
func (r *Repository) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("entradas").
		Columns(
			"placa",
			"tipo_vehiculo",
			"parqueadero_id",
			"controlador_id",
			"espacio_asignado",
			"hora_ingreso",
			"estado",
			"monto_cobrado",
		).
		Values(
			e.Plate,
			e.VehicleType,
			e.ParkingLotID,
			e.ControllerID,
			e.SpaceNumber,
			e.CheckInTime,
			e.Status,
			e.ChargedAmount,
		).
		Suffix("RETURNING id, fecha_creacion, fecha_actualizacion").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return e, nil
}

// GetByID получает запись по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectEntries().Where(squirrel.Eq{"e.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF e")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	e, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %w", ErrScanRow, err)
	}

	return e, nil
}

// List возвращает все записи, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.Entry, error) {
	return r.query(ctx, "List", selectEntries().OrderBy("e.hora_ingreso DESC", "e.id DESC"))
}

// Search ищет записи: номер и тип ТС по подстроке, статус точно
func (r *Repository) Search(ctx context.Context, search domain.EntrySearch) ([]*domain.Entry, error) {
	builder := selectEntries()

	switch search.Field {
	case domain.EntrySearchByPlate:
		builder = builder.Where(squirrel.ILike{"e.placa": domain.ContainsPattern(search.Value)})
	case domain.EntrySearchByVehicleType:
		builder = builder.Where(squirrel.ILike{"e.tipo_vehiculo": domain.ContainsPattern(search.Value)})
	case domain.EntrySearchByStatus:
		builder = builder.Where(squirrel.Eq{"e.estado": search.Value})
	default:
		return nil, fmt.Errorf("%w: Search - unsupported field %q", ErrBuildQuery, search.Field)
	}

	return r.query(ctx, "Search", builder.OrderBy("e.hora_ingreso DESC", "e.id DESC"))
}

// ExistsOpenByPlate проверяет наличие открытой записи с номером plate (кроме excludeID).
// excludeID = 0 означает без исключений.
func (r *Repository) ExistsOpenByPlate(ctx context.Context, plate string, excludeID int64) (bool, error) {
	builder := psqlbuilder.Select("1").
		From("entradas").
		Where(squirrel.Expr("UPPER(TRIM(placa)) = ?", domain.NormalizePlate(plate))).
		Where(squirrel.Eq{"estado": domain.EntryOpen})

	if excludeID > 0 {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}

	return r.exists(ctx, "ExistsOpenByPlate", builder)
}

// ExistsOpenInSpace проверяет, занято ли место space на парковке lotID (кроме excludeID)
func (r *Repository) ExistsOpenInSpace(ctx context.Context, lotID int64, space int, excludeID int64) (bool, error) {
	builder := psqlbuilder.Select("1").
		From("entradas").
		Where(squirrel.Eq{
			"parqueadero_id":   lotID,
			"espacio_asignado": space,
			"estado":           domain.EntryOpen,
		})

	if excludeID > 0 {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}

	return r.exists(ctx, "ExistsOpenInSpace", builder)
}

// CountOpenInLot количество открытых записей на парковке lotID (кроме excludeID)
func (r *Repository) CountOpenInLot(ctx context.Context, lotID int64, excludeID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("COUNT(*)").
		From("entradas").
		Where(squirrel.Eq{"parqueadero_id": lotID, "estado": domain.EntryOpen})

	if excludeID > 0 {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOpenInLot - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOpenInLot - execute query: %w", ErrExecQuery, err)
	}

	return count, nil
}

// Update перезаписывает редактируемые поля (номер, тип, парковка, контролер, место)
func (r *Repository) Update(ctx context.Context, id int64, e *domain.Entry) (*domain.Entry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("entradas").
		Set("placa", e.Plate).
		Set("tipo_vehiculo", e.VehicleType).
		Set("parqueadero_id", e.ParkingLotID).
		Set("controlador_id", e.ControllerID).
		Set("espacio_asignado", e.SpaceNumber).
		Set("fecha_actualizacion", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrEntryNotFound
	}

	return r.GetByID(ctx, id)
}

// Close закрывает открытую запись: статус 'cerrada', время выезда и сумма.
// Обновление условное (estado = 'activa'): если запись уже закрыл
// параллельный запрос, возвращается ErrEntryNotOpen.
func (r *Repository) Close(ctx context.Context, id int64, checkOut time.Time, amount float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("entradas").
		Set("estado", domain.EntryClosed).
		Set("hora_salida", checkOut).
		Set("monto_cobrado", amount).
		Set("fecha_actualizacion", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "estado": domain.EntryOpen}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Close - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Close - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Close - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotOpen
	}

	return nil
}

// Delete удаляет запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("entradas").
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
		return ErrEntryNotFound
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, op string, builder squirrel.SelectBuilder) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}

	return true, nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Entry, error) {
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

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var e domain.Entry
	var checkOut sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.Plate,
		&e.VehicleType,
		&e.ParkingLotID,
		&e.ControllerID,
		&e.SpaceNumber,
		&e.CheckInTime,
		&checkOut,
		&e.Status,
		&e.ChargedAmount,
		&e.ParkingLotName,
		&e.ControllerName,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if checkOut.Valid {
		e.CheckOutTime = &checkOut.Time
	}

	return &e, nil
}

// mapConstraintError переводит нарушения ограничений в ошибки репозитория; nil, если это не они
func mapConstraintError(err error) error {
	switch {
	case pgerr.IsUniqueViolation(err, plateIndex):
		return ErrDuplicatePlate
	case pgerr.IsUniqueViolation(err, spaceIndex):
		return ErrSpaceOccupied
	case pgerr.IsForeignKeyViolation(err, lotForeignKey):
		return ErrLotNotFound
	case pgerr.IsForeignKeyViolation(err, controllerForeignKey):
		return ErrControllerNotFound
	default:
		return nil
	}
}
