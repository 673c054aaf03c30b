package entry

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
)

var entryColumns = []string{
	"id", "placa", "tipo_vehiculo", "parqueadero_id", "controlador_id", "espacio_asignado",
	"hora_ingreso", "hora_salida", "estado", "monto_cobrado", "parqueadero", "controlador",
	"fecha_creacion", "fecha_actualizacion",
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	checkIn := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO entradas")).
		WithArgs("ABC123", "moto", int64(1), int64(2), 3, checkIn, "activa", 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fecha_creacion", "fecha_actualizacion"}).
			AddRow(10, checkIn, checkIn))

	e, err := repo.Create(context.Background(), &domain.Entry{
		Plate:        "ABC123",
		VehicleType:  domain.VehicleMotorcycle,
		ParkingLotID: 1,
		ControllerID: 2,
		SpaceNumber:  3,
		CheckInTime:  checkIn,
		Status:       domain.EntryOpen,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolations(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"plate", &pq.Error{Code: "23505", Constraint: plateIndex}, ErrDuplicatePlate},
		{"space", &pq.Error{Code: "23505", Constraint: spaceIndex}, ErrSpaceOccupied},
		{"lot", &pq.Error{Code: "23503", Constraint: lotForeignKey}, ErrLotNotFound},
		{"controller", &pq.Error{Code: "23503", Constraint: controllerForeignKey}, ErrControllerNotFound},
		{"other", &pq.Error{Code: "57014"}, ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO entradas")).WillReturnError(tt.err)

			_, err := repo.Create(context.Background(), &domain.Entry{Plate: "ABC123", Status: domain.EntryOpen})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)
	checkIn := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(2 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM entradas e LEFT JOIN parqueaderos p ON p.id = e.parqueadero_id LEFT JOIN controladores c ON c.id = e.controlador_id WHERE e.id = $1")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow(10, "ABC123", "moto", 1, 2, 3, checkIn, checkOut, "cerrada", 3000.0, "Centro", "Ana", checkIn, checkOut))

	e, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryClosed, e.Status)
	require.NotNil(t, e.CheckOutTime)
	assert.True(t, checkOut.Equal(*e.CheckOutTime))
	assert.Equal(t, "Centro", e.ParkingLotName)
	assert.Equal(t, "Ana", e.ControllerName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil, "primary")
	repo := NewRepository(wrapped)

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1 FOR UPDATE OF e")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(entryColumns))

	_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 10)
	assert.ErrorIs(t, err, ErrEntryNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsOpenByPlate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM entradas WHERE UPPER(TRIM(placa)) = $1 AND estado = $2 AND id <> $3 LIMIT 1")).
		WithArgs("ABC123", "activa", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsOpenByPlate(context.Background(), " abc123", 4)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsOpenInSpace_Free(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM entradas WHERE espacio_asignado = $1 AND estado = $2 AND parqueadero_id = $3 LIMIT 1")).
		WithArgs(7, "activa", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsOpenInSpace(context.Background(), 1, 7, 0)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClose(t *testing.T) {
	checkOut := time.Date(2024, 1, 8, 12, 30, 1, 0, time.UTC)

	t.Run("closes open entry", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE entradas SET estado = $1, hora_salida = $2, monto_cobrado = $3, fecha_actualizacion = NOW() WHERE estado = $4 AND id = $5")).
			WithArgs("cerrada", checkOut, 3000.0, "activa", int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Close(context.Background(), 10, checkOut, 3000))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already closed", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE entradas")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Close(context.Background(), 10, checkOut, 3000)
		assert.ErrorIs(t, err, ErrEntryNotOpen)
	})
}

func TestSearch_ByStatus(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.estado = $1 ORDER BY e.hora_ingreso DESC, e.id DESC")).
		WithArgs("activa").
		WillReturnRows(sqlmock.NewRows(entryColumns))

	got, err := repo.Search(context.Background(), domain.EntrySearch{Field: domain.EntrySearchByStatus, Value: "activa"})
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entradas WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrEntryNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOpenInLot(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM entradas WHERE estado = $1 AND parqueadero_id = $2 AND id <> $3")).
		WithArgs("activa", int64(4), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	count, err := repo.CountOpenInLot(context.Background(), 4, 9)
	require.NoError(t, err)
	assert.Equal(t, 17, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
