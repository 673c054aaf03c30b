package controller

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

const identificationKey = "controladores_identificacion_key"

var columns = []string{
	"id",
	"nombre",
	"identificacion",
	"telefono",
	"rol",
	"activo",
}

// Repository репозиторий контролеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория контролеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает контролера
func (r *Repository) Create(ctx context.Context, c *domain.Controller) (*domain.Controller, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("controladores").
		Columns("nombre", "identificacion", "telefono", "rol", "activo").
		Values(c.Name, c.Identification, c.Phone, c.Role, c.Active).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created, err := scanController(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if pgerr.IsUniqueViolation(err, identificationKey) {
			return nil, ErrDuplicateIdentification
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает контролера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Controller, error) {
	return r.get(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCredentials получает контролера по имени и номеру документа
func (r *Repository) GetByCredentials(ctx context.Context, name, identification string) (*domain.Controller, error) {
	return r.get(ctx, "GetByCredentials", squirrel.Eq{"nombre": name, "identificacion": identification})
}

// List возвращает всех контролеров
func (r *Repository) List(ctx context.Context) ([]*domain.Controller, error) {
	return r.query(ctx, "List", psqlbuilder.Select(columns...).From("controladores").OrderBy("id ASC"))
}

// Search ищет контролеров: имя и документ по подстроке, роль и активность точно
func (r *Repository) Search(ctx context.Context, search domain.ControllerSearch) ([]*domain.Controller, error) {
	builder := psqlbuilder.Select(columns...).From("controladores")

	switch search.Field {
	case domain.ControllerSearchByName:
		builder = builder.Where(squirrel.ILike{"nombre": domain.ContainsPattern(search.Value)})
	case domain.ControllerSearchByIdentification:
		builder = builder.Where(squirrel.ILike{"identificacion": domain.ContainsPattern(search.Value)})
	case domain.ControllerSearchByRole:
		builder = builder.Where(squirrel.Eq{"rol": search.Value})
	case domain.ControllerSearchByActive:
		builder = builder.Where(squirrel.Eq{"activo": search.Active})
	default:
		return nil, fmt.Errorf("%w: Search - unsupported field %q", ErrBuildQuery, search.Field)
	}

	return r.query(ctx, "Search", builder.OrderBy("id ASC"))
}

// Update меняет имя, телефон, роль и активность. Номер документа не меняется
func (r *Repository) Update(ctx context.Context, id int64, c *domain.Controller) (*domain.Controller, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("controladores").
		Set("nombre", c.Name).
		Set("telefono", c.Phone).
		Set("rol", c.Role).
		Set("activo", c.Active).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	updated, err := scanController(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrControllerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет контролера без записей
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("controladores").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err, "") {
			return ErrControllerInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrControllerNotFound
	}

	return nil
}

func (r *Repository) get(ctx context.Context, op string, where squirrel.Eq) (*domain.Controller, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("controladores").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	c, err := scanController(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrControllerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan controller: %w", ErrScanRow, op, err)
	}

	return c, nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Controller, error) {
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

	controllers := make([]*domain.Controller, 0)
	for rows.Next() {
		c, err := scanController(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		controllers = append(controllers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return controllers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanController(row rowScanner) (*domain.Controller, error) {
	var c domain.Controller

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Identification,
		&c.Phone,
		&c.Role,
		&c.Active,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
