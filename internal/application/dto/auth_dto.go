package dto

// RegisterRequest entrada para registro público.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,between=2-100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest actualización parcial del perfil propio.
// Los campos ausentes conservan su valor actual.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,between=2-100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,password"`
}

// ChangePasswordRequest cambio de contraseña con verificación de la actual.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,password"`
}

// LoginResponse token emitido más el usuario autenticado.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
