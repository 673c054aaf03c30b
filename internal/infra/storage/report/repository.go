package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository агрегирующие запросы для отчетов
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает репозиторий отчетов. loc задает часовой пояс,
// в котором въезд относится к календарному дню
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

func revenueColumns() []string {
	return []string{
		"p.id",
		"p.nombre",
		"COUNT(e.id)",
		"COALESCE(SUM(e.monto_cobrado), 0)",
		"COALESCE(AVG(e.monto_cobrado), 0)",
		"COUNT(CASE WHEN e.estado = 'activa' THEN 1 END)",
		"COUNT(CASE WHEN e.estado = 'cerrada' THEN 1 END)",
		"MIN(e.hora_ingreso)",
		"MAX(e.hora_salida)",
	}
}

// RevenueByLot доходы по всем парковкам, по убыванию дохода
func (r *Repository) RevenueByLot(ctx context.Context) ([]domain.LotRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(revenueColumns()...).
		From("parqueaderos p").
		LeftJoin("entradas e ON e.parqueadero_id = p.id").
		GroupBy("p.id", "p.nombre").
		OrderBy("COALESCE(SUM(e.monto_cobrado), 0) DESC", "p.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByLot - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByLot - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.LotRevenue, 0)
	for rows.Next() {
		rev, err := scanLotRevenue(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: RevenueByLot - scan row: %w", ErrScanRow, err)
		}
		result = append(result, *rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RevenueByLot - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// RevenueForLot доходы одной парковки
func (r *Repository) RevenueForLot(ctx context.Context, lotID int64) (*domain.LotRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(revenueColumns()...).
		From("parqueaderos p").
		LeftJoin("entradas e ON e.parqueadero_id = p.id").
		Where(squirrel.Eq{"p.id": lotID}).
		GroupBy("p.id", "p.nombre").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RevenueForLot - build select query: %w", ErrBuildQuery, err)
	}

	rev, err := scanLotRevenue(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueForLot - scan row: %w", ErrScanRow, err)
	}

	return rev, nil
}

// DailyRevenue доход парковки по дням въезда в диапазоне [from, to] (даты включительно)
func (r *Repository) DailyRevenue(ctx context.Context, lotID int64, from, to time.Time) ([]domain.DailyRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := "DATE(e.hora_ingreso AT TIME ZONE '" + r.loc.String() + "')"

	query, args, err := psqlbuilder.Select(
		day+" AS fecha",
		"COUNT(e.id)",
		"COALESCE(SUM(e.monto_cobrado), 0)",
	).
		From("entradas e").
		Where(squirrel.Eq{"e.parqueadero_id": lotID}).
		Where(squirrel.Expr(day+" BETWEEN ? AND ?", from.Format(domain.DateFormat), to.Format(domain.DateFormat))).
		GroupBy("fecha").
		OrderBy("fecha DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DailyRevenue - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DailyRevenue - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.DailyRevenue, 0)
	for rows.Next() {
		var d domain.DailyRevenue
		if err := rows.Scan(&d.Date, &d.Entries, &d.Revenue); err != nil {
			return nil, fmt.Errorf("%w: DailyRevenue - scan row: %w", ErrScanRow, err)
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: DailyRevenue - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// RevenueByVehicle доход парковки по типам ТС (только записи с оплатой)
func (r *Repository) RevenueByVehicle(ctx context.Context, lotID int64) ([]domain.VehicleRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tipo_vehiculo",
		"COUNT(id)",
		"COALESCE(SUM(monto_cobrado), 0) AS ingresos",
		"COALESCE(AVG(monto_cobrado), 0)",
	).
		From("entradas").
		Where(squirrel.Eq{"parqueadero_id": lotID}).
		Where(squirrel.Gt{"monto_cobrado": 0}).
		GroupBy("tipo_vehiculo").
		OrderBy("ingresos DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByVehicle - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueByVehicle - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.VehicleRevenue, 0)
	for rows.Next() {
		var v domain.VehicleRevenue
		if err := rows.Scan(&v.VehicleType, &v.Count, &v.Revenue, &v.Average); err != nil {
			return nil, fmt.Errorf("%w: RevenueByVehicle - scan row: %w", ErrScanRow, err)
		}
		v.Average = domain.RoundMoney(v.Average)
		result = append(result, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RevenueByVehicle - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Occupancy текущая занятость каждой парковки по открытым записям
func (r *Repository) Occupancy(ctx context.Context) ([]domain.LotOccupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.nombre",
		"p.capacidad",
		"COUNT(e.id)",
	).
		From("parqueaderos p").
		LeftJoin("entradas e ON e.parqueadero_id = p.id AND e.estado = 'activa'").
		GroupBy("p.id", "p.nombre", "p.capacidad").
		OrderBy("p.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Occupancy - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Occupancy - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.LotOccupancy, 0)
	for rows.Next() {
		var o domain.LotOccupancy
		if err := rows.Scan(&o.ParkingLotID, &o.Name, &o.Capacity, &o.Occupied); err != nil {
			return nil, fmt.Errorf("%w: Occupancy - scan row: %w", ErrScanRow, err)
		}
		result = append(result, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Occupancy - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// StaleEntries открытые записи с въездом раньше before
func (r *Repository) StaleEntries(ctx context.Context, before time.Time) ([]domain.StaleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "placa", "parqueadero_id", "hora_ingreso").
		From("entradas").
		Where(squirrel.Eq{"estado": domain.EntryOpen}).
		Where(squirrel.Lt{"hora_ingreso": before}).
		OrderBy("hora_ingreso ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: StaleEntries - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: StaleEntries - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.StaleEntry, 0)
	for rows.Next() {
		var s domain.StaleEntry
		if err := rows.Scan(&s.EntryID, &s.Plate, &s.ParkingLotID, &s.CheckInTime); err != nil {
			return nil, fmt.Errorf("%w: StaleEntries - scan row: %w", ErrScanRow, err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: StaleEntries - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// ClosedBetween число закрытых записей и сумма оплат с выездом в [from, to)
func (r *Repository) ClosedBetween(ctx context.Context, from, to time.Time) (int, float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(id)", "COALESCE(SUM(monto_cobrado), 0)").
		From("entradas").
		Where(squirrel.Eq{"estado": domain.EntryClosed}).
		Where(squirrel.GtOrEq{"hora_salida": from}).
		Where(squirrel.Lt{"hora_salida": to}).
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: ClosedBetween - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	var revenue float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count, &revenue); err != nil {
		return 0, 0, fmt.Errorf("%w: ClosedBetween - scan row: %w", ErrScanRow, err)
	}

	return count, revenue, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLotRevenue(row rowScanner) (*domain.LotRevenue, error) {
	var rev domain.LotRevenue
	var firstEntry, lastExit sql.NullTime

	err := row.Scan(
		&rev.ParkingLotID,
		&rev.Name,
		&rev.TotalEntries,
		&rev.TotalRevenue,
		&rev.AverageRevenue,
		&rev.OpenEntries,
		&rev.ClosedEntries,
		&firstEntry,
		&lastExit,
	)
	if err != nil {
		return nil, err
	}

	rev.AverageRevenue = domain.RoundMoney(rev.AverageRevenue)
	if firstEntry.Valid {
		rev.FirstEntry = &firstEntry.Time
	}
	if lastExit.Valid {
		rev.LastExit = &lastExit.Time
	}

	return &rev, nil
}
