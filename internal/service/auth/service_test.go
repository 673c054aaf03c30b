package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	controllerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/controller"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ParkingService/internal/service/auth/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type fakeUsers struct {
	users       map[string]*domain.User
	controllers map[string]*domain.Controller
}

func (f *fakeUsers) GetUserByName(_ context.Context, name string) (*domain.User, error) {
	u, ok := f.users[name]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByCredentials(_ context.Context, name, identification string) (*domain.Controller, error) {
	c, ok := f.controllers[name]
	if !ok || c.Identification != identification {
		return nil, controllerRepo.ErrControllerNotFound
	}
	return c, nil
}

func newService(t *testing.T) (*Service, *clock) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUsers{
		users: map[string]*domain.User{
			"admin":    {ID: 1, Name: "admin", Email: "admin@parqueo.co", PasswordHash: string(hash), Role: domain.RoleAdmin, Active: true},
			"inactivo": {ID: 2, Name: "inactivo", PasswordHash: string(hash), Role: domain.RoleOperator},
		},
		controllers: map[string]*domain.Controller{
			"Ana": {ID: 7, Name: "Ana", Identification: "1020", Active: true},
		},
	}

	c := &clock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	svc := NewService(users, users, "test-secret", 8*time.Hour, nopLogger{})
	svc.timeProvider = c
	return svc, c
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, _ := newService(t)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Nombre: "admin", Password: "secreto"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "administrador", resp.User.Rol)
	assert.Equal(t, "admin@parqueo.co", resp.User.Email)

	principal, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{ID: 1, Name: "admin", Role: domain.RoleAdmin}, principal)
}

func TestLogin_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr error
	}{
		{name: "empty", req: models.LoginRequest{}, wantErr: ErrInvalidInput},
		{name: "unknown user", req: models.LoginRequest{Nombre: "nadie", Password: "secreto"}, wantErr: ErrInvalidCredentials},
		{name: "wrong password", req: models.LoginRequest{Nombre: "admin", Password: "otro"}, wantErr: ErrInvalidCredentials},
		{name: "inactive user", req: models.LoginRequest{Nombre: "inactivo", Password: "secreto"}, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)
			req := tt.req

			resp, err := svc.Login(context.Background(), &req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoginController(t *testing.T) {
	svc, _ := newService(t)

	resp, err := svc.LoginController(context.Background(), &models.ControllerLoginRequest{Nombre: "Ana", Identificacion: "1020"})
	require.NoError(t, err)
	assert.Equal(t, "controlador", resp.User.Rol)

	principal, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), principal.ID)
	assert.Equal(t, domain.RoleController, principal.Role)

	_, err = svc.LoginController(context.Background(), &models.ControllerLoginRequest{Nombre: "Ana", Identificacion: "9999"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_Expired(t *testing.T) {
	svc, c := newService(t)
	resp, err := svc.Login(context.Background(), &models.LoginRequest{Nombre: "admin", Password: "secreto"})
	require.NoError(t, err)

	c.now = c.now.Add(9 * time.Hour)

	_, err = svc.ParseToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecretAndAlgorithm(t *testing.T) {
	svc, c := newService(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: "administrador",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(c.now.Add(time.Hour)),
		},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ParseToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims{
		Role:             "administrador",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(c.now.Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_UnknownRole(t *testing.T) {
	svc, c := newService(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:             "superusuario",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(c.now.Add(time.Hour))},
	}).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
