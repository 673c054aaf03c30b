package parkinglots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parkinglot"
	"github.com/m04kA/SMC-ParkingService/internal/service/parkinglots/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	lots       map[int64]*domain.ParkingLot
	inUse      map[int64]bool
	lastSearch domain.ParkingLotSearch
	nextID     int64
}

func newRepo() *fakeRepo {
	return &fakeRepo{lots: map[int64]*domain.ParkingLot{}, inUse: map[int64]bool{}}
}

func (f *fakeRepo) Create(_ context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	f.nextID++
	cp := *lot
	cp.ID = f.nextID
	f.lots[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.ParkingLot, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	return lot, nil
}

func (f *fakeRepo) List(context.Context) ([]*domain.ParkingLot, error) {
	var out []*domain.ParkingLot
	for _, lot := range f.lots {
		out = append(out, lot)
	}
	return out, nil
}

func (f *fakeRepo) Search(_ context.Context, search domain.ParkingLotSearch) ([]*domain.ParkingLot, error) {
	f.lastSearch = search
	return nil, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	if _, ok := f.lots[id]; !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	cp := *lot
	cp.ID = id
	f.lots[id] = &cp
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if f.inUse[id] {
		return lotRepo.ErrLotInUse
	}
	if _, ok := f.lots[id]; !ok {
		return lotRepo.ErrLotNotFound
	}
	delete(f.lots, id)
	return nil
}

func TestCreate(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.ParkingLotRequest{
		Nombre:        " Centro ",
		Capacidad:     40,
		Ubicacion:     "Calle 10",
		Ciudad:        "Bogotá",
		DiasOperacion: "Lunes-Sábado",
	})

	require.NoError(t, err)
	assert.Equal(t, "Centro", resp.Nombre)
	assert.Equal(t, "Lunes-Sábado", resp.DiasOperacion)
	assert.Equal(t, domain.DayRange{From: domain.Monday, To: domain.Saturday}, repo.lots[resp.ID].OperatingDays)
}

func TestCreate_DefaultsToEveryDay(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.ParkingLotRequest{Nombre: "Norte", Capacidad: 5})

	require.NoError(t, err)
	assert.Equal(t, domain.EveryDay, repo.lots[resp.ID].OperatingDays)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.ParkingLotRequest
	}{
		{name: "missing name", req: models.ParkingLotRequest{Capacidad: 1}},
		{name: "zero capacity", req: models.ParkingLotRequest{Nombre: "x"}},
		{name: "negative capacity", req: models.ParkingLotRequest{Nombre: "x", Capacidad: -3}},
		{name: "bad days", req: models.ParkingLotRequest{Nombre: "x", Capacidad: 1, DiasOperacion: "Lunes-Feriado"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo()
			svc := NewService(repo, nopLogger{})
			req := tt.req

			_, err := svc.Create(context.Background(), &req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.lots)
		})
	}
}

func TestSearch(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.Search(context.Background(), "capacidad", "50")
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastSearch.Capacity)

	_, err = svc.Search(context.Background(), "capacidad", "muchos")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Search(context.Background(), "tarifa", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, nopLogger{})
	created, err := svc.Create(context.Background(), &models.ParkingLotRequest{Nombre: "a", Capacidad: 1})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &models.ParkingLotRequest{Nombre: "b", Capacidad: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Capacidad)

	_, err = svc.Update(context.Background(), 99, &models.ParkingLotRequest{Nombre: "b", Capacidad: 2})
	assert.ErrorIs(t, err, ErrLotNotFound)

	repo.inUse[created.ID] = true
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrLotInUse)

	repo.inUse[created.ID] = false
	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrLotNotFound)
}
