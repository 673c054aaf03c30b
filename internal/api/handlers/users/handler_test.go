package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usersService "github.com/m04kA/SMC-ParkingService/internal/service/users"
	"github.com/m04kA/SMC-ParkingService/internal/service/users/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	items map[int64]*models.UserResponse
}

func (f *fakeService) Create(_ context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	if len(req.Password) < 6 {
		return nil, usersService.ErrInvalidInput
	}
	for _, u := range f.items {
		if u.Email == req.Email {
			return nil, usersService.ErrDuplicateEmail
		}
		if u.Nombre == req.Nombre {
			return nil, usersService.ErrDuplicateName
		}
	}
	u := &models.UserResponse{ID: int64(len(f.items) + 1), Nombre: req.Nombre, Email: req.Email, Rol: "operador", Activo: true}
	f.items[u.ID] = u
	return u, nil
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*models.UserResponse, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, usersService.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeService) List(context.Context) ([]models.UserResponse, error) {
	out := make([]models.UserResponse, 0, len(f.items))
	for _, u := range f.items {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeService) Search(ctx context.Context, criterion, _ string) ([]models.UserResponse, error) {
	if criterion != "email" {
		return nil, usersService.ErrInvalidInput
	}
	return f.List(ctx)
}

func (f *fakeService) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Rol != nil {
		u.Rol = *req.Rol
	}
	return u, nil
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return usersService.ErrUserNotFound
	}
	delete(f.items, id)
	return nil
}

func newRouter(svc *fakeService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/users", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/users", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/users/buscar/{criterio}/{valor}", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/api/users/{id}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestUserLifecycle(t *testing.T) {
	r := newRouter(&fakeService{items: map[int64]*models.UserResponse{}})

	rec := do(r, http.MethodPost, "/api/users", `{"nombre":"laura","email":"l@p.co","password":"secreto"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secreto")

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/api/users", `{"nombre":"otra","email":"l@p.co","password":"secreto"}`).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/api/users", `{"nombre":"laura","email":"x@p.co","password":"secreto"}`).Code)

	rec = do(r, http.MethodPut, "/api/users/1", `{"rol":"administrador"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rol":"administrador"`)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/users/buscar/email/p.co", "").Code)

	rec = do(r, http.MethodDelete, "/api/users/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Usuario eliminado"}`, rec.Body.String())
}

func TestUserErrors(t *testing.T) {
	r := newRouter(&fakeService{items: map[int64]*models.UserResponse{}})

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/users", `{"nombre":"laura","email":"l@p.co","password":"123"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/users/1", `{`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/api/users/1", `{"activo":false}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/users/3", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/users/buscar/password/x", "").Code)
}
