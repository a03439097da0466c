package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
	"github.com/jhoicas/Timesheet-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// HashPassword valida la longitud mínima y devuelve el hash bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail recorta y pasa a minúsculas; valida un formato mínimo.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return email, nil
}

// RegisterAdmin crea un usuario admin (dueño de sus propios datos).
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterAdmin(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	id := uuid.New().String()
	user := &entity.User{
		ID:           id,
		OwnerID:      id,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID(), user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ChangePassword cambia la contraseña propia (exige la actual) o, si el caller es admin
// y envía target_user_id, la de uno de sus clients.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, callerID string, in dto.ChangePasswordRequest) error {
	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if caller == nil {
		return domain.ErrUserNotFound
	}

	targetID := strings.TrimSpace(in.TargetUserID)
	if targetID != "" && targetID != caller.ID {
		if !caller.IsAdmin() {
			return domain.ErrForbidden
		}
		target, err := uc.userRepo.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if target == nil || target.Role != entity.RoleClient || target.OwnerID != caller.ID {
			return domain.ErrNotFound
		}
		hash, err := HashPassword(in.NewPassword)
		if err != nil {
			return err
		}
		return uc.userRepo.UpdatePassword(ctx, target.ID, hash, time.Now().UTC())
	}

	if in.CurrentPassword == "" {
		return fmt.Errorf("%w: current_password es obligatoria", domain.ErrInvalidInput)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(caller.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, caller.ID, hash, time.Now().UTC())
}

// ToUserResponse convierte la entidad (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		OwnerID:   u.TenantID(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
