package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/domain"
	"github.com/tu-usuario/catalog-api/internal/domain/entity"
	"github.com/tu-usuario/catalog-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio
// ──────────────────────────────────────────────────────────────────────────────

// fakeUserRepo repositorio en memoria. GetByEmail compara el email tal cual
// llega, igual que la consulta SQL; la normalización es responsabilidad del
// caso de uso.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(repository.UserFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Stats() (*repository.UserStats, error) {
	return &repository.UserStats{}, nil
}

func newTestUseCase() (*AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, JWTConfig{
		Secret:   "test-secret-key-for-unit-tests",
		ExpHours: 1,
		Issuer:   "catalog-api-test",
	})
	return uc, repo
}

func register(t *testing.T, uc *AuthUseCase, name, email, password string) *dto.LoginResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthRegister(t *testing.T) {
	t.Run("crea la cuenta con rol user, activa y con token emitido", func(t *testing.T) {
		uc, repo := newTestUseCase()
		out := register(t, uc, "Ana", "ana@example.com", "Secreta1")

		assert.Equal(t, entity.RoleUser, out.User.Role)
		assert.True(t, out.User.IsActive)
		assert.NotEmpty(t, out.Token)

		stored, err := repo.GetByID(out.User.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "Secreta1", stored.PasswordHash, "el password nunca se guarda en claro")
	})

	t.Run("normaliza el email antes de persistirlo", func(t *testing.T) {
		uc, repo := newTestUseCase()
		out := register(t, uc, "Ana", "  Ana@Example.COM ", "Secreta1")

		stored, err := repo.GetByID(out.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", stored.Email)
	})

	t.Run("email repetido devuelve conflicto", func(t *testing.T) {
		uc, _ := newTestUseCase()
		register(t, uc, "Ana", "test@example.com", "Secreta1")

		_, err := uc.Register(dto.RegisterRequest{Name: "Otro", Email: "test@example.com", Password: "Secreta1"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("email repetido con mayúsculas o espacios también es conflicto", func(t *testing.T) {
		uc, _ := newTestUseCase()
		register(t, uc, "Ana", "test@example.com", "Secreta1")

		_, err := uc.Register(dto.RegisterRequest{Name: "Otro", Email: "Test@Example.com ", Password: "Secreta1"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthLogin(t *testing.T) {
	t.Run("credenciales válidas emiten token y registran lastLogin", func(t *testing.T) {
		uc, repo := newTestUseCase()
		created := register(t, uc, "Ana", "ana@example.com", "Secreta1")
		require.Nil(t, created.User.LastLogin, "antes del primer login no hay lastLogin")

		out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "Secreta1"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Token)
		require.NotNil(t, out.User.LastLogin)

		stored, err := repo.GetByID(out.User.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLogin, "lastLogin debe quedar persistido")
	})

	t.Run("acepta el email en cualquier combinación de mayúsculas", func(t *testing.T) {
		uc, _ := newTestUseCase()
		register(t, uc, "Ana", "ana@example.com", "Secreta1")

		_, err := uc.Login(dto.LoginRequest{Email: " ANA@Example.com", Password: "Secreta1"})
		assert.NoError(t, err)
	})

	t.Run("password incorrecto y cuenta inexistente devuelven el mismo error", func(t *testing.T) {
		uc, _ := newTestUseCase()
		register(t, uc, "Ana", "ana@example.com", "Secreta1")

		_, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "otra"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

		_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "Secreta1"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("cuenta desactivada no puede iniciar sesión", func(t *testing.T) {
		uc, repo := newTestUseCase()
		created := register(t, uc, "Ana", "ana@example.com", "Secreta1")

		stored, _ := repo.GetByID(created.User.ID)
		stored.IsActive = false
		require.NoError(t, repo.Update(stored))

		_, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "Secreta1"})
		assert.ErrorIs(t, err, domain.ErrAccountDisabled)
	})

	t.Run("la respuesta serializada nunca incluye el password", func(t *testing.T) {
		uc, _ := newTestUseCase()
		register(t, uc, "Ana", "ana@example.com", "Secreta1")

		out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "Secreta1"})
		require.NoError(t, err)

		raw, err := json.Marshal(out)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
		assert.NotContains(t, string(raw), "Secreta1")
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil, cambio de password y refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthProfile(t *testing.T) {
	t.Run("actualiza nombre y email normalizado", func(t *testing.T) {
		uc, repo := newTestUseCase()
		created := register(t, uc, "Ana", "ana@example.com", "Secreta1")

		name := "Ana María"
		email := " Nueva@Example.com"
		out, err := uc.UpdateProfile(created.User.ID, dto.UpdateProfileRequest{Name: &name, Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "Ana María", out.Name)
		assert.Equal(t, "nueva@example.com", out.Email)

		stored, _ := repo.GetByID(created.User.ID)
		assert.Equal(t, "nueva@example.com", stored.Email)
	})

	t.Run("no permite tomar el email de otra cuenta aunque cambie el caso", func(t *testing.T) {
		uc, _ := newTestUseCase()
		register(t, uc, "Ana", "ana@example.com", "Secreta1")
		other := register(t, uc, "Beto", "beto@example.com", "Secreta1")

		email := "Ana@Example.com"
		_, err := uc.UpdateProfile(other.User.ID, dto.UpdateProfileRequest{Email: &email})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("cambio de password exige el actual y permite login con el nuevo", func(t *testing.T) {
		uc, _ := newTestUseCase()
		created := register(t, uc, "Ana", "ana@example.com", "Secreta1")

		err := uc.ChangePassword(created.User.ID, dto.ChangePasswordRequest{
			CurrentPassword: "equivocada",
			NewPassword:     "Nueva123",
		})
		assert.ErrorIs(t, err, domain.ErrCurrentPassword)

		err = uc.ChangePassword(created.User.ID, dto.ChangePasswordRequest{
			CurrentPassword: "Secreta1",
			NewPassword:     "Nueva123",
		})
		require.NoError(t, err)

		_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "Nueva123"})
		assert.NoError(t, err)
	})

	t.Run("refresh falla para cuentas borradas o desactivadas", func(t *testing.T) {
		uc, repo := newTestUseCase()
		created := register(t, uc, "Ana", "ana@example.com", "Secreta1")

		tok, err := uc.RefreshToken(created.User.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, tok)

		stored, _ := repo.GetByID(created.User.ID)
		stored.IsActive = false
		require.NoError(t, repo.Update(stored))
		_, err = uc.RefreshToken(created.User.ID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		require.NoError(t, repo.Delete(created.User.ID))
		_, err = uc.RefreshToken(created.User.ID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
