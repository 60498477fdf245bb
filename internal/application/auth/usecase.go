package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/pkg/jwt"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

// Status estado de la sesión local para mostrar al usuario.
type Status struct {
	LoggedIn         bool
	Username         string
	AccessExpiresAt  time.Time // cero si el token no se puede leer
	RefreshExpiresAt time.Time
}

// SessionUseCase casos de uso de sesión del cliente: login, logout y estado.
type SessionUseCase struct {
	gateway ports.AuthGateway
	store   ports.SessionStore
	log     *logger.Logger
}

// NewSessionUseCase construye el caso de uso de sesión.
func NewSessionUseCase(gateway ports.AuthGateway, store ports.SessionStore, log *logger.Logger) *SessionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionUseCase{gateway: gateway, store: store, log: log.Named("sessao")}
}

// Login valida credenciales contra el backend y guarda access, refresh y username.
// El username guardado es el escrito por el usuario.
func (uc *SessionUseCase) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: usuário e senha", domain.ErrValidation)
	}
	pair, err := uc.gateway.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := uc.store.Set(ctx, pair.Access, pair.Refresh, username); err != nil {
		return fmt.Errorf("login: guardar sesión: %w", err)
	}
	uc.log.Info().Str("username", username).Msg("sesión iniciada")
	return nil
}

// Logout revoca el refresh token en el servidor (si hay) y borra la sesión local.
// La sesión se borra aunque el servidor falle; el error del servidor se devuelve igualmente.
func (uc *SessionUseCase) Logout(ctx context.Context) error {
	refresh, err := uc.store.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("logout: leer sesión: %w", err)
	}
	var remoteErr error
	if refresh != "" {
		remoteErr = uc.gateway.Logout(ctx, refresh)
		if remoteErr != nil && !errors.Is(remoteErr, domain.ErrSessionExpired) {
			uc.log.Warn().Err(remoteErr).Msg("logout remoto fallido; se borra la sesión local")
		} else {
			remoteErr = nil
		}
	}
	if err := uc.store.Clear(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("logout: borrar sesión: %w", err)
	}
	return remoteErr
}

// RequireSession devuelve ErrUnauthenticated si no hay access token o username.
func (uc *SessionUseCase) RequireSession(ctx context.Context) (string, error) {
	access, err := uc.store.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	username, err := uc.store.Username(ctx)
	if err != nil {
		return "", err
	}
	if access == "" || username == "" {
		return "", domain.ErrUnauthenticated
	}
	return username, nil
}

// Status lee la sesión local y la expiración de los tokens sin llamar al servidor.
func (uc *SessionUseCase) Status(ctx context.Context) (*Status, error) {
	access, err := uc.store.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	refresh, err := uc.store.RefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	username, err := uc.store.Username(ctx)
	if err != nil {
		return nil, err
	}
	st := &Status{LoggedIn: access != "", Username: username}
	if claims, err := jwt.Inspect(access); err == nil {
		st.AccessExpiresAt = claims.ExpiresAtTime()
	}
	if claims, err := jwt.Inspect(refresh); err == nil {
		st.RefreshExpiresAt = claims.ExpiresAtTime()
	}
	return st, nil
}
