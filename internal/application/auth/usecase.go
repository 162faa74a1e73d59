package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Panaderia-api/internal/application/audit"
	"github.com/jhoicas/Panaderia-api/internal/application/dto"
	"github.com/jhoicas/Panaderia-api/internal/application/ports"
	"github.com/jhoicas/Panaderia-api/internal/domain"
	"github.com/jhoicas/Panaderia-api/internal/domain/entity"
	"github.com/jhoicas/Panaderia-api/internal/domain/repository"
	"github.com/jhoicas/Panaderia-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación y administración de usuarios (solo admin).
type UseCase struct {
	txRunner ports.TxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(txRunner ports.TxRunner, userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{txRunner: txRunner, userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password con bcrypt, genera el JWT (id + rol) y
// retorna token + usuario. Usuarios inactivos no pueden entrar.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// CreateUser alta de usuario (solo admin). La contraseña se hashea con
// bcrypt y la cuenta nace con MustReset para forzar el cambio inicial.
func (uc *UseCase) CreateUser(ctx context.Context, adminID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role != entity.RoleAdmin {
		role = entity.RoleUser
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		MustReset:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Users.Create(user); err != nil {
			return err
		}
		return audit.Record(r.Audit, adminID, "create", "User", user.ID, toUserResponse(user))
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateUser actualización parcial de usuario (solo admin). Cambiar la
// contraseña limpia MustReset.
func (uc *UseCase) UpdateUser(ctx context.Context, adminID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var user *entity.User
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		user, err = r.Users.GetByID(id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if in.Role != nil {
			if *in.Role == entity.RoleAdmin {
				user.Role = entity.RoleAdmin
			} else {
				user.Role = entity.RoleUser
			}
		}
		if in.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.PasswordHash = string(hash)
			user.MustReset = false
		}
		if in.Active != nil {
			user.Active = *in.Active
		}
		if in.MustReset != nil {
			user.MustReset = *in.MustReset
		}
		user.UpdatedAt = time.Now()
		if err := r.Users.Update(user); err != nil {
			return err
		}
		return audit.Record(r.Audit, adminID, "update", "User", user.ID, toUserResponse(user))
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers usuarios sin hash de contraseña (solo admin).
func (uc *UseCase) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		MustReset: u.MustReset,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
