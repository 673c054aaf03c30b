package controllers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	controllerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/controller"
	"github.com/m04kA/SMC-ParkingService/internal/service/controllers/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	items      map[int64]*domain.Controller
	inUse      map[int64]bool
	lastSearch domain.ControllerSearch
	nextID     int64
}

func newRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]*domain.Controller{}, inUse: map[int64]bool{}}
}

func (f *fakeRepo) Create(_ context.Context, c *domain.Controller) (*domain.Controller, error) {
	for _, existing := range f.items {
		if existing.Identification == c.Identification {
			return nil, controllerRepo.ErrDuplicateIdentification
		}
	}
	f.nextID++
	cp := *c
	cp.ID = f.nextID
	f.items[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Controller, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, controllerRepo.ErrControllerNotFound
	}
	return c, nil
}

func (f *fakeRepo) List(context.Context) ([]*domain.Controller, error) {
	out := make([]*domain.Controller, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) Search(_ context.Context, search domain.ControllerSearch) ([]*domain.Controller, error) {
	f.lastSearch = search
	return nil, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, c *domain.Controller) (*domain.Controller, error) {
	existing, ok := f.items[id]
	if !ok {
		return nil, controllerRepo.ErrControllerNotFound
	}
	cp := *c
	cp.ID = id
	cp.Identification = existing.Identification
	f.items[id] = &cp
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if f.inUse[id] {
		return controllerRepo.ErrControllerInUse
	}
	if _, ok := f.items[id]; !ok {
		return controllerRepo.ErrControllerNotFound
	}
	delete(f.items, id)
	return nil
}

func TestCreate_Defaults(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.ControllerRequest{
		Nombre:         " Ana ",
		Identificacion: " 1020 ",
		Telefono:       ptr.Ptr("  "),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.Nombre)
	assert.Equal(t, "1020", resp.Identificacion)
	assert.Equal(t, "operador", resp.Rol)
	assert.True(t, resp.Activo)
	assert.Nil(t, resp.Telefono)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ControllerRequest
		wantErr error
	}{
		{name: "no name", req: models.ControllerRequest{Identificacion: "1"}, wantErr: ErrInvalidInput},
		{name: "no identification", req: models.ControllerRequest{Nombre: "Ana"}, wantErr: ErrInvalidInput},
		{name: "unknown role", req: models.ControllerRequest{Nombre: "Ana", Identificacion: "1", Rol: "jefe"}, wantErr: ErrInvalidInput},
		{name: "duplicate", req: models.ControllerRequest{Nombre: "Otra", Identificacion: "1020"}, wantErr: ErrDuplicateIdentification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo()
			repo.items[1] = &domain.Controller{ID: 1, Name: "Ana", Identification: "1020"}
			svc := NewService(repo, nopLogger{})
			req := tt.req

			_, err := svc.Create(context.Background(), &req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, repo.items, 1)
		})
	}
}

func TestUpdate_KeepsIdentification(t *testing.T) {
	repo := newRepo()
	repo.items[1] = &domain.Controller{ID: 1, Name: "Ana", Identification: "1020", Role: domain.ControllerOperator, Active: true}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.ControllerRequest{
		Nombre:         "Ana María",
		Identificacion: "9999",
		Rol:            "Supervisor",
		Activo:         ptr.Ptr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, "1020", resp.Identificacion)
	assert.Equal(t, "supervisor", resp.Rol)
	assert.False(t, resp.Activo)

	_, err = svc.Update(context.Background(), 7, &models.ControllerRequest{Nombre: "x"})
	assert.ErrorIs(t, err, ErrControllerNotFound)
}

func TestDelete(t *testing.T) {
	repo := newRepo()
	repo.items[1] = &domain.Controller{ID: 1, Name: "Ana", Identification: "1020"}
	repo.items[2] = &domain.Controller{ID: 2, Name: "Luis", Identification: "3040"}
	repo.inUse[2] = true
	svc := NewService(repo, nopLogger{})

	deleted, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", deleted.Nombre)

	_, err = svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrControllerNotFound)

	_, err = svc.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, ErrControllerInUse)
}

func TestSearch(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.Search(context.Background(), "activo", "false")
	require.NoError(t, err)
	assert.Equal(t, domain.ControllerSearchByActive, repo.lastSearch.Field)
	assert.False(t, repo.lastSearch.Active)

	_, err = svc.Search(context.Background(), "telefono", "300")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
