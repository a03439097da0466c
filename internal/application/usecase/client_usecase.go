package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Timesheet-api/internal/application/auth"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
	"github.com/samber/lo"
)

// ClientUseCase cuentas client de un admin y sus proyectos asignados.
type ClientUseCase struct {
	txRunner ClientTxRunner
	userRepo repository.UserRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(txRunner ClientTxRunner, userRepo repository.UserRepository) *ClientUseCase {
	return &ClientUseCase{txRunner: txRunner, userRepo: userRepo}
}

// Create crea el usuario client y le asigna proyectos del owner.
func (uc *ClientUseCase) Create(ctx context.Context, ownerID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	email, err := auth.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	projectIDs := cleanIDs(in.ProjectIDs)
	now := time.Now().UTC()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         entity.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunClients(ctx, func(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) error {
		existing, err := userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := checkProjects(ctx, projectRepo, ownerID, projectIDs); err != nil {
			return err
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return userRepo.SetProjects(ctx, user.ID, projectIDs)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ClientResponse{UserResponse: *auth.ToUserResponse(user), ProjectIDs: projectIDs}, nil
}

// List clients del owner con sus proyectos.
func (uc *ClientUseCase) List(ctx context.Context, ownerID string) ([]dto.ClientResponse, error) {
	users, err := uc.userRepo.ListClients(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(users))
	for _, u := range users {
		ids, err := uc.userRepo.ProjectIDs(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.ClientResponse{UserResponse: *auth.ToUserResponse(u), ProjectIDs: ids})
	}
	return out, nil
}

// UpdateProjects reemplaza las asignaciones del client de forma atómica.
func (uc *ClientUseCase) UpdateProjects(ctx context.Context, ownerID, clientID string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	projectIDs := cleanIDs(in.ProjectIDs)
	var client *entity.User
	err := uc.txRunner.RunClients(ctx, func(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) error {
		var err error
		if client, err = ownedClient(ctx, userRepo, ownerID, clientID); err != nil {
			return err
		}
		if err := checkProjects(ctx, projectRepo, ownerID, projectIDs); err != nil {
			return err
		}
		return userRepo.SetProjects(ctx, client.ID, projectIDs)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ClientResponse{UserResponse: *auth.ToUserResponse(client), ProjectIDs: projectIDs}, nil
}

// Delete elimina un client del owner (nunca un admin).
func (uc *ClientUseCase) Delete(ctx context.Context, ownerID, clientID string) error {
	client, err := ownedClient(ctx, uc.userRepo, ownerID, clientID)
	if err != nil {
		return err
	}
	return uc.userRepo.Delete(ctx, client.ID)
}

func ownedClient(ctx context.Context, repo repository.UserRepository, ownerID, clientID string) (*entity.User, error) {
	u, err := repo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.OwnerID != ownerID || u.ID == ownerID {
		return nil, domain.ErrNotFound
	}
	if u.Role != entity.RoleClient {
		return nil, fmt.Errorf("%w: el usuario no es un client", domain.ErrForbidden)
	}
	return u, nil
}

func checkProjects(ctx context.Context, repo repository.ProjectRepository, ownerID string, ids []string) error {
	for _, id := range ids {
		p, err := repo.GetByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: proyecto %s", domain.ErrNotFound, id)
		}
	}
	return nil
}

func cleanIDs(ids []string) []string {
	out := lo.Uniq(lo.Compact(lo.Map(ids, func(id string, _ int) string { return strings.TrimSpace(id) })))
	if out == nil {
		return []string{}
	}
	return out
}
