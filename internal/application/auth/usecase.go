package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/domain"
	"github.com/tu-usuario/catalog-api/internal/domain/entity"
	"github.com/tu-usuario/catalog-api/internal/domain/repository"
	"github.com/tu-usuario/catalog-api/pkg/jwt"
)

const bcryptCost = 12

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// AuthUseCase casos de uso de autenticación y de la cuenta propia.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario con rol user, hashea el password con bcrypt y
// devuelve el perfil junto con un token recién emitido. ErrEmailTaken si el
// email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(email)
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
	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &dto.LoginResponse{User: resp, Token: token}, nil
}

// Login verifica credenciales y emite un token. Credenciales erróneas e
// inexistentes devuelven el mismo ErrInvalidCredentials; cuentas desactivadas
// devuelven ErrAccountDisabled.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	now := time.Now()
	user.LastLogin = &now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &dto.LoginResponse{User: resp, Token: token}, nil
}

// GetProfile devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile actualiza parcialmente nombre y email del usuario autenticado.
// Un cambio de email exige que el nuevo no esté en uso por otra cuenta.
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if email != user.Email {
			other, err := uc.userRepo.GetByEmail(email)
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
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// ChangePassword verifica el password actual y guarda el nuevo hasheado.
func (uc *AuthUseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrCurrentPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// RefreshToken emite un token nuevo para un usuario que sigue existiendo y
// activo; si fue borrado o desactivado desde la emisión anterior, 401.
func (uc *AuthUseCase) RefreshToken(userID string) (string, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive {
		return "", domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

func (uc *AuthUseCase) issueToken(user *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
}
