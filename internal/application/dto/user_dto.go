package dto

import (
	"time"

	"github.com/tu-usuario/catalog-api/internal/domain/entity"
	"github.com/tu-usuario/catalog-api/internal/domain/repository"
)

// UserResponse salida de un usuario. El hash de contraseña jamás se incluye.
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ToUserResponse proyecta la entidad a su representación pública.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUserRequest alta de usuario por un admin.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,between=2-100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// UpdateUserRequest actualización parcial de un usuario por un admin.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,between=2-100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,password"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin user"`
	IsActive *bool   `json:"isActive"`
}

// UserStatsResponse agregados del recurso usuarios.
type UserStatsResponse struct {
	Total               int `json:"total"`
	Active              int `json:"active"`
	Inactive            int `json:"inactive"`
	Admins              int `json:"admins"`
	Regular             int `json:"regular"`
	RecentRegistrations int `json:"recentRegistrations"`
}

// ToUserStatsResponse proyecta los agregados del repositorio.
func ToUserStatsResponse(s *repository.UserStats) UserStatsResponse {
	return UserStatsResponse{
		Total:               s.Total,
		Active:              s.Active,
		Inactive:            s.Inactive,
		Admins:              s.Admins,
		Regular:             s.Regular,
		RecentRegistrations: s.RecentRegistrations,
	}
}
