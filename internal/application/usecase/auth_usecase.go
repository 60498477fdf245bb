package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
	"github.com/jhoicas/estoque-cliente/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

const msgTokenInvalid = "O token é inválido ou expirado"

// AuthUseCase casos de uso de autenticación: login, refresh y logout con blacklist.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	blacklist repository.TokenBlacklist
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, blacklist repository.TokenBlacklist, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, blacklist: blacklist, jwtCfg: jwtCfg}
}

// EnsureUser crea el usuario si no existe (seed del servidor de desarrollo).
func (uc *AuthUseCase) EnsureUser(ctx context.Context, username, password string) (*entity.User, error) {
	existing, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Username: username, PasswordHash: string(hash), CreatedAt: time.Now()}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica usuario/contraseña y emite el par access/refresh. El access lleva el
// claim username.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenPair, error) {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Username) == "" {
		errs.add("username", msgRequired)
	}
	if in.Password == "" {
		errs.add("password", msgRequired)
	}
	if err := errs.orNil(); err != nil {
		return nil, err
	}
	invalid := detail(domain.ErrUnauthorized, "Credenciais inválidas.")
	user, err := uc.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, invalid
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, jwt.TypeAccess, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, jwt.TypeRefresh, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh emite un access nuevo a partir de un refresh válido y no revocado.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.AccessResponse, error) {
	claims, err := uc.validRefresh(ctx, in.Refresh)
	if err != nil {
		return nil, err
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, claims.UserID, claims.Username, jwt.TypeAccess, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &dto.AccessResponse{Access: access}, nil
}

// Logout revoca el refresh token. Un token inválido o ya revocado es un 400.
func (uc *AuthUseCase) Logout(ctx context.Context, in dto.RefreshRequest) error {
	claims, err := uc.validRefresh(ctx, in.Refresh)
	if err != nil {
		var fe FieldErrors
		if errors.As(err, &fe) || errors.Is(err, domain.ErrUnauthorized) {
			return detail(domain.ErrInvalidInput, "Token inválido ou já expirado.")
		}
		return err
	}
	return uc.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAtTime())
}

func (uc *AuthUseCase) validRefresh(ctx context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, FieldErrors{"refresh": {msgRequired}}
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token, jwt.TypeRefresh)
	if err != nil {
		return nil, detail(domain.ErrUnauthorized, msgTokenInvalid)
	}
	revoked, err := uc.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, detail(domain.ErrUnauthorized, "O token está na blacklist")
	}
	return claims, nil
}
