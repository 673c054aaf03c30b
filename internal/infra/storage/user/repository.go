package user

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

const (
	nameKey  = "usuarios_nombre_key"
	emailKey = "usuarios_email_key"
)

var columns = []string{
	"id",
	"nombre",
	"email",
	"password",
	"rol",
	"activo",
	"fecha_creacion",
}

// Repository репозиторий пользователей (администраторы и операторы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя. PasswordHash должен быть уже посчитан
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("usuarios").
		Columns("nombre", "email", "password", "rol", "activo").
		Values(u.Name, u.Email, u.PasswordHash, u.Role, u.Active).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if mapped := mapUniqueError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetUserByName получает пользователя по имени (логину)
func (r *Repository) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	return r.get(ctx, "GetUserByName", squirrel.Eq{"nombre": name})
}

// Count возвращает количество пользователей
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("usuarios").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %w", ErrBuildQuery, err)
	}

	var n int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %w", ErrScanRow, err)
	}

	return n, nil
}

// List возвращает всех пользователей
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	return r.query(ctx, "List", psqlbuilder.Select(columns...).From("usuarios").OrderBy("id ASC"))
}

// Search ищет пользователей: имя и email по подстроке, роль точно
func (r *Repository) Search(ctx context.Context, search domain.UserSearch) ([]*domain.User, error) {
	builder := psqlbuilder.Select(columns...).From("usuarios")

	switch search.Field {
	case domain.UserSearchByName:
		builder = builder.Where(squirrel.ILike{"nombre": domain.ContainsPattern(search.Value)})
	case domain.UserSearchByEmail:
		builder = builder.Where(squirrel.ILike{"email": domain.ContainsPattern(search.Value)})
	case domain.UserSearchByRole:
		builder = builder.Where(squirrel.Eq{"rol": search.Value})
	default:
		return nil, fmt.Errorf("%w: Search - unsupported field %q", ErrBuildQuery, search.Field)
	}

	return r.query(ctx, "Search", builder.OrderBy("id ASC"))
}

// Update меняет только заданные поля. Пустое изменение возвращает текущую запись
func (r *Repository) Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	if upd.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("usuarios")
	if upd.Name != nil {
		builder = builder.Set("nombre", *upd.Name)
	}
	if upd.Email != nil {
		builder = builder.Set("email", *upd.Email)
	}
	if upd.PasswordHash != nil {
		builder = builder.Set("password", *upd.PasswordHash)
	}
	if upd.Role != nil {
		builder = builder.Set("rol", *upd.Role)
	}
	if upd.Active != nil {
		builder = builder.Set("activo", *upd.Active)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	updated, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if mapped := mapUniqueError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет пользователя
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("usuarios").
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
		return ErrUserNotFound
	}

	return nil
}

func (r *Repository) get(ctx context.Context, op string, where squirrel.Eq) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("usuarios").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %w", ErrScanRow, op, err)
	}

	return u, nil
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.User, error) {
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

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return users, nil
}

func mapUniqueError(err error) error {
	switch {
	case pgerr.IsUniqueViolation(err, nameKey):
		return ErrDuplicateName
	case pgerr.IsUniqueViolation(err, emailKey):
		return ErrDuplicateEmail
	default:
		return nil
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Active,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &u, nil
}
