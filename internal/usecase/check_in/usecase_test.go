package check_in

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	entryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/entry"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type passTx struct{ calls int }

func (p *passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type countingMetrics struct{ checkIns map[string]int }

func (m *countingMetrics) ObserveCheckIn(vehicleType string) {
	if m.checkIns == nil {
		m.checkIns = map[string]int{}
	}
	m.checkIns[vehicleType]++
}

// fakeEntries хранит записи в памяти
type fakeEntries struct {
	entries    []*domain.Entry
	createErr  error
	countErrs  []error // по одной ошибке на вызов CountOpenInLot
	countCalls int
	nextID     int64
}

func (f *fakeEntries) ExistsOpenByPlate(_ context.Context, plate string, excludeID int64) (bool, error) {
	for _, e := range f.entries {
		if e.IsOpen() && e.Plate == domain.NormalizePlate(plate) && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEntries) ExistsOpenInSpace(_ context.Context, lotID int64, space int, excludeID int64) (bool, error) {
	for _, e := range f.entries {
		if e.IsOpen() && e.ParkingLotID == lotID && e.SpaceNumber == space && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEntries) CountOpenInLot(_ context.Context, lotID int64, excludeID int64) (int, error) {
	f.countCalls++
	if len(f.countErrs) > 0 {
		err := f.countErrs[0]
		f.countErrs = f.countErrs[1:]
		return 0, err
	}
	n := 0
	for _, e := range f.entries {
		if e.IsOpen() && e.ParkingLotID == lotID && e.ID != excludeID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEntries) Create(_ context.Context, e *domain.Entry) (*domain.Entry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := *e
	created.ID = f.nextID
	f.entries = append(f.entries, &created)
	return &created, nil
}

type fakeLots map[int64]*domain.ParkingLot

func (f fakeLots) GetByID(_ context.Context, id int64) (*domain.ParkingLot, error) {
	lot, ok := f[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	return lot, nil
}

var now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func newUseCase(entries *fakeEntries) (*UseCase, *countingMetrics) {
	lots := fakeLots{
		1: {ID: 1, Name: "Centro", Capacity: 3},
		2: {ID: 2, Name: "Norte", Capacity: 1},
		3: {ID: 3, Name: "Sur", Capacity: 10},
	}
	m := &countingMetrics{}
	uc := NewUseCase(entries, lots, &passTx{}, m, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc, m
}

func openEntry(id int64, plate string, lot int64, space int) *domain.Entry {
	return &domain.Entry{ID: id, Plate: plate, ParkingLotID: lot, SpaceNumber: space, Status: domain.EntryOpen}
}

func TestExecute_Success(t *testing.T) {
	entries := &fakeEntries{}
	uc, m := newUseCase(entries)

	resp, err := uc.Execute(context.Background(), &Request{
		Plate:        "  abc123 ",
		VehicleType:  domain.VehicleMotorcycle,
		ParkingLotID: 1,
		ControllerID: 5,
		SpaceNumber:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Entry.ID)
	assert.Equal(t, "ABC123", resp.Entry.Plate)
	assert.Equal(t, domain.EntryOpen, resp.Entry.Status)
	assert.Equal(t, now, resp.Entry.CheckInTime)
	assert.Zero(t, resp.Entry.ChargedAmount)
	assert.Nil(t, resp.Entry.CheckOutTime)
	assert.Equal(t, "Centro", resp.Entry.ParkingLotName)
	assert.Equal(t, 1, m.checkIns["moto"])
}

func TestExecute_ClosedEntriesDoNotBlock(t *testing.T) {
	closed := openEntry(1, "ABC123", 1, 2)
	closed.Status = domain.EntryClosed
	entries := &fakeEntries{entries: []*domain.Entry{closed}, nextID: 1}
	uc, _ := newUseCase(entries)

	_, err := uc.Execute(context.Background(), &Request{
		Plate: "ABC123", VehicleType: domain.VehicleCar, ParkingLotID: 1, ControllerID: 5, SpaceNumber: 2,
	})

	require.NoError(t, err)
}

func TestExecute_SpaceEqualToCapacity(t *testing.T) {
	entries := &fakeEntries{}
	uc, _ := newUseCase(entries)

	resp, err := uc.Execute(context.Background(), &Request{
		Plate: "CAP010", VehicleType: domain.VehicleCar, ParkingLotID: 3, ControllerID: 5, SpaceNumber: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 10, resp.Entry.SpaceNumber)

	_, err = uc.Execute(context.Background(), &Request{
		Plate: "CAP011", VehicleType: domain.VehicleCar, ParkingLotID: 3, ControllerID: 5, SpaceNumber: 11,
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_RetriesSerializationConflict(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	conflict := fmt.Errorf("%w: CountOpenInLot - execute query: %w", entryRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	entries := &fakeEntries{countErrs: []error{conflict}}
	lots := fakeLots{1: {ID: 1, Name: "Centro", Capacity: 3}}
	m := &countingMetrics{}
	tm := txmanager.NewTransactionManager(dbmetrics.Wrap(sqlDB, nil, "primary"))
	uc := NewUseCase(entries, lots, tm, m, nopLogger{})
	uc.timeProvider = fixedClock{now: now}

	resp, err := uc.Execute(context.Background(), &Request{
		Plate: "AAA111", VehicleType: domain.VehicleCar, ParkingLotID: 1, ControllerID: 5, SpaceNumber: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Entry.ID)
	assert.Equal(t, 2, entries.countCalls)
	assert.Len(t, entries.entries, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		existing []*domain.Entry
		req      Request
		wantErr  error
	}{
		{
			name:    "blank plate",
			req:     Request{Plate: "   ", VehicleType: domain.VehicleCar, ParkingLotID: 1, ControllerID: 5, SpaceNumber: 1},
			wantErr: ErrValidation,
		},
		{
			name:    "wildcard vehicle type",
			req:     Request{Plate: "AAA111", VehicleType: domain.VehicleAny, ParkingLotID: 1, ControllerID: 5, SpaceNumber: 1},
			wantErr: ErrValidation,
		},
		{
			name:    "space zero",
			req:     Request{Plate: "AAA111", VehicleType: domain.VehicleCar, ParkingLotID: 1, ControllerID: 5},
			wantErr: ErrValidation,
		},
		{
			name:     "plate already parked elsewhere",
			existing: []*domain.Entry{openEntry(1, "AAA111", 2, 1)},
			req:      Request{Plate: "aaa111", VehicleType: domain.VehicleCar, ParkingLotID: 1, ControllerID: 5, SpaceNumber: 1},
			wantErr:  ErrDuplicatePlate,
		},
		{
			name:     "duplicate plate reported before occupied space",
			existing: []*domain.Entry{openEntry(1, "AAA111", 1, 1)},
			req:      Request{Plate: "AAA111", VehicleType: domain.VehicleCar, ParkingLotID: 1, ControllerID: 5, SpaceNumber: 1},
			wantErr:  ErrDuplicatePlate,
		},
		{
			name:     "space occupied",
			existing: []*domain.Entry{openEntry(1, "BBB222", 1, 1)},
			req:      Request{Plate: "AAA111", VehicleType: domain.VehicleCar, ParkingLotID: 1, ControllerID: 5, SpaceNumber: 1},
			wantErr:  ErrSpaceOccupied,
		},
		{
			name:    "unknown lot",
			req:     Request{Plate: "AAA111", VehicleType: domain.VehicleCar, ParkingLotID: 99, ControllerID: 5, SpaceNumber: 1},
			wantErr: ErrLotNotFound,
		},
		{
			name:    "space above capacity",
			req:     Request{Plate: "AAA111", VehicleType: domain.VehicleCar, ParkingLotID: 1, ControllerID: 5, SpaceNumber: 4},
			wantErr: ErrCapacityExceeded,
		},
		{
			name:     "lot full",
			existing: []*domain.Entry{openEntry(1, "BBB222", 2, 7)},
			req:      Request{Plate: "AAA111", VehicleType: domain.VehicleCar, ParkingLotID: 2, ControllerID: 5, SpaceNumber: 1},
			wantErr:  ErrCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := &fakeEntries{entries: tt.existing, nextID: int64(len(tt.existing))}
			uc, m := newUseCase(entries)
			req := tt.req

			resp, err := uc.Execute(context.Background(), &req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, entries.entries, len(tt.existing))
			assert.Empty(t, m.checkIns)
		})
	}
}

func TestExecute_MapsRepositoryErrors(t *testing.T) {
	tests := []struct {
		repoErr error
		wantErr error
	}{
		{repoErr: entryRepo.ErrDuplicatePlate, wantErr: ErrDuplicatePlate},
		{repoErr: entryRepo.ErrSpaceOccupied, wantErr: ErrSpaceOccupied},
		{repoErr: entryRepo.ErrControllerNotFound, wantErr: ErrControllerNotFound},
		{repoErr: entryRepo.ErrLotNotFound, wantErr: ErrLotNotFound},
		{repoErr: errors.New("boom"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.wantErr.Error(), func(t *testing.T) {
			uc, _ := newUseCase(&fakeEntries{createErr: tt.repoErr})

			_, err := uc.Execute(context.Background(), &Request{
				Plate: "AAA111", VehicleType: domain.VehicleCar, ParkingLotID: 1, ControllerID: 5, SpaceNumber: 1,
			})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
