package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Timesheet-api/internal/application/auth"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/memory"
	"github.com/jhoicas/Timesheet-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func newAuth(t *testing.T) (*auth.AuthUseCase, *usecase.ClientUseCase) {
	t.Helper()
	db := memory.NewStore()
	users := memory.NewUserRepository(db)
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "timesheet-api"})
	return uc, usecase.NewClientUseCase(memory.NewTxRunner(db), users)
}

func TestRegisterAdmin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: "  Admin@Example.COM ", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, u.ID, u.OwnerID, "el admin es dueño de sus datos")

	_, err = uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: "admin@example.com", Password: "otro123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: "sin-arroba", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: "corto@example.com", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	admin, err := uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: "admin@example.com", Password: "secreto"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ADMIN@example.com", Password: "secreto"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, admin.ID, out.User.ID)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, admin.ID, claims.OwnerID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_ClientLlevaOwnerDelAdmin(t *testing.T) {
	uc, clients := newAuth(t)
	ctx := context.Background()
	admin, err := uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: "admin@example.com", Password: "secreto"})
	require.NoError(t, err)
	client, err := clients.Create(ctx, admin.ID, dto.CreateClientRequest{Email: "c@example.com", Password: "cliente1"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "c@example.com", Password: "cliente1"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, client.ID, claims.UserID)
	assert.Equal(t, admin.ID, claims.OwnerID)
	assert.Equal(t, entity.RoleClient, claims.Role)
}

func TestChangePassword_Propia(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	admin, err := uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: "admin@example.com", Password: "secreto"})
	require.NoError(t, err)

	err = uc.ChangePassword(ctx, admin.ID, dto.ChangePasswordRequest{NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "exige la contraseña actual")

	err = uc.ChangePassword(ctx, admin.ID, dto.ChangePasswordRequest{CurrentPassword: "mal", NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, uc.ChangePassword(ctx, admin.ID, dto.ChangePasswordRequest{CurrentPassword: "secreto", NewPassword: "nueva123"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "nueva123"})
	assert.NoError(t, err)
}

func TestChangePassword_AdminSobreSuClient(t *testing.T) {
	uc, clients := newAuth(t)
	ctx := context.Background()
	admin, err := uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: "admin@example.com", Password: "secreto"})
	require.NoError(t, err)
	other, err := uc.RegisterAdmin(ctx, dto.RegisterRequest{Email: "otro@example.com", Password: "secreto"})
	require.NoError(t, err)
	client, err := clients.Create(ctx, admin.ID, dto.CreateClientRequest{Email: "c@example.com", Password: "cliente1"})
	require.NoError(t, err)

	require.NoError(t, uc.ChangePassword(ctx, admin.ID, dto.ChangePasswordRequest{TargetUserID: client.ID, NewPassword: "reset123"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "c@example.com", Password: "reset123"})
	assert.NoError(t, err)

	err = uc.ChangePassword(ctx, other.ID, dto.ChangePasswordRequest{TargetUserID: client.ID, NewPassword: "hack1234"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un admin no toca clients ajenos")

	err = uc.ChangePassword(ctx, client.ID, dto.ChangePasswordRequest{TargetUserID: admin.ID, NewPassword: "hack1234"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
