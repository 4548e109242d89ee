package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/domain"
	"github.com/tu-usuario/catalog-api/internal/domain/entity"
	"github.com/tu-usuario/catalog-api/internal/domain/repository"
)

const bcryptCost = 12

// UserUseCase administración de usuarios, solo accesible para admins.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios con búsqueda por nombre/email y paginación.
func (uc *UserUseCase) List(q dto.PageQuery) ([]dto.UserResponse, *dto.Pagination, error) {
	q.Defaults()
	users, total, err := uc.repo.List(repository.UserFilter{
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.ToUserResponse(u))
	}
	meta := dto.NewPagination(q.Page, q.Limit, total)
	return items, &meta, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Create crea un usuario desde el panel admin; el rol por defecto es user.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Update actualiza parcialmente un usuario. Un cambio de email exige que el
// nuevo no pertenezca a otra cuenta.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if email != user.Email {
			other, err := uc.repo.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailTaken
			}
			user.Email = email
		}
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Delete elimina un usuario. Un admin no puede eliminar su propia cuenta.
func (uc *UserUseCase) Delete(id, actorID string) error {
	if id == actorID {
		return domain.ErrOwnAccountDelete
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}

// ToggleStatus invierte el flag isActive. Un admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) ToggleStatus(id, actorID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if id == actorID && user.IsActive {
		return nil, domain.ErrOwnAccountDeactivate
	}
	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Stats agregados de usuarios para el panel admin.
func (uc *UserUseCase) Stats() (*dto.UserStatsResponse, error) {
	stats, err := uc.repo.Stats()
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserStatsResponse(stats)
	return &resp, nil
}
