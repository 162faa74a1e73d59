package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Panaderia-api/internal/application/apptest"
	"github.com/jhoicas/Panaderia-api/internal/application/auth"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Panaderia-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func ptr[T any](v T) *T { return &v }

func buildUseCase(s *apptest.Store) *auth.UseCase {
	repos := s.Repos()
	return auth.NewUseCase(&apptest.TxRunner{S: s}, repos.Users, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 15,
		Issuer:     "panaderia-api-test",
	})
}

func seedUser(t *testing.T, s *apptest.Store, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "user-1",
		Name:         "Ana",
		Email:        "ana@panaderia.com",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Active:       active,
		CreatedAt:    time.Now(),
	}
	s.Users[u.ID] = u
	return u
}

// ──────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────

func TestLogin_TokenConIDYRol(t *testing.T) {
	s := apptest.NewStore()
	seedUser(t, s, "secreta123", true)
	uc := buildUseCase(s)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@panaderia.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.User.ID)

	userID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	s := apptest.NewStore()
	seedUser(t, s, "secreta123", true)
	uc := buildUseCase(s)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@panaderia.com",
		Password: "otra-clave",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	s := apptest.NewStore()
	uc := buildUseCase(s)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@panaderia.com",
		Password: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	s := apptest.NewStore()
	seedUser(t, s, "secreta123", false)
	uc := buildUseCase(s)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@panaderia.com",
		Password: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────
// CreateUser / UpdateUser
// ──────────────────────────────────────────────────────────────────────────

func TestCreateUser_NaceConMustReset(t *testing.T) {
	s := apptest.NewStore()
	uc := buildUseCase(s)

	resp, err := uc.CreateUser(context.Background(), "admin-1", dto.CreateUserRequest{
		Name:     "Bruno",
		Email:    "bruno@panaderia.com",
		Password: "inicial123",
		Role:     "repostero", // rol desconocido cae a user
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.Role)
	assert.True(t, resp.MustReset)
	assert.True(t, resp.Active)
	assert.Len(t, s.AuditLogs, 1)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	s := apptest.NewStore()
	seedUser(t, s, "secreta123", true)
	uc := buildUseCase(s)

	_, err := uc.CreateUser(context.Background(), "admin-1", dto.CreateUserRequest{
		Name:     "Otra Ana",
		Email:    "ana@panaderia.com",
		Password: "inicial123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdateUser_CambioDePasswordLimpiaMustReset(t *testing.T) {
	s := apptest.NewStore()
	u := seedUser(t, s, "secreta123", true)
	u.MustReset = true
	uc := buildUseCase(s)

	resp, err := uc.UpdateUser(context.Background(), "admin-1", u.ID, dto.UpdateUserRequest{
		Password: ptr("nueva-clave-1"),
	})
	require.NoError(t, err)
	assert.False(t, resp.MustReset)

	// La nueva contraseña funciona para login.
	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@panaderia.com",
		Password: "nueva-clave-1",
	})
	assert.NoError(t, err)
}

func TestUpdateUser_Inexistente(t *testing.T) {
	s := apptest.NewStore()
	uc := buildUseCase(s)

	_, err := uc.UpdateUser(context.Background(), "admin-1", "user-nada", dto.UpdateUserRequest{
		Active: ptr(false),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
