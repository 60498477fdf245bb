package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-cliente/internal/application/auth"
	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/sessionstore"
	pkgjwt "github.com/jhoicas/estoque-cliente/pkg/jwt"
)

type fakeGateway struct {
	pair        dto.TokenPair
	loginErr    error
	logoutErr   error
	loginCalls  int
	logoutCalls int
	lastRefresh string
}

func (f *fakeGateway) Login(_ context.Context, _, _ string) (dto.TokenPair, error) {
	f.loginCalls++
	return f.pair, f.loginErr
}

func (f *fakeGateway) Logout(_ context.Context, refresh string) error {
	f.logoutCalls++
	f.lastRefresh = refresh
	return f.logoutErr
}

func TestLogin_GuardaLosTresCampos(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{pair: dto.TokenPair{Access: "a1", Refresh: "r1"}}
	store := sessionstore.NewMemoryStore()
	uc := auth.NewSessionUseCase(gw, store, nil)

	require.NoError(t, uc.Login(ctx, "  maria ", "segredo"))

	access, _ := store.AccessToken(ctx)
	refresh, _ := store.RefreshToken(ctx)
	user, _ := store.Username(ctx)
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)
	assert.Equal(t, "maria", user, "se guarda el usuario escrito, sin espacios")
}

func TestLogin_CamposVaciosNoLlamanAlServidor(t *testing.T) {
	gw := &fakeGateway{}
	uc := auth.NewSessionUseCase(gw, sessionstore.NewMemoryStore(), nil)

	err := uc.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, domain.ErrValidation)
	err = uc.Login(context.Background(), "maria", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, gw.loginCalls)
}

func TestLogin_ErrorNoModificaSesion(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{loginErr: &domain.APIError{Status: 401, Detail: "Credenciais inválidas."}}
	store := sessionstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "a0", "r0", "joao"))
	uc := auth.NewSessionUseCase(gw, store, nil)

	err := uc.Login(ctx, "maria", "errada")

	assert.Equal(t, "Credenciais inválidas.", domain.Detail(err))
	user, _ := store.Username(ctx)
	assert.Equal(t, "joao", user)
}

func TestLogout_RevocaYBorra(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	store := sessionstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "a1", "r1", "maria"))
	uc := auth.NewSessionUseCase(gw, store, nil)

	require.NoError(t, uc.Logout(ctx))

	assert.Equal(t, "r1", gw.lastRefresh)
	_, err := uc.RequireSession(ctx)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogout_BorraAunqueElServidorFalle(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{logoutErr: errors.New("HTTP 500")}
	store := sessionstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "a1", "r1", "maria"))
	uc := auth.NewSessionUseCase(gw, store, nil)

	err := uc.Logout(ctx)

	assert.Error(t, err, "el fallo remoto se informa")
	access, _ := store.AccessToken(ctx)
	assert.Empty(t, access, "pero la sesión local queda borrada")
}

func TestLogout_SinSesionNoLlamaAlServidor(t *testing.T) {
	gw := &fakeGateway{}
	uc := auth.NewSessionUseCase(gw, sessionstore.NewMemoryStore(), nil)

	require.NoError(t, uc.Logout(context.Background()))
	assert.Zero(t, gw.logoutCalls)
}

func TestStatus_LeeExpiracionDelToken(t *testing.T) {
	ctx := context.Background()
	access, err := pkgjwt.Generate("s", 1, "maria", pkgjwt.TypeAccess, "t", 5*time.Minute)
	require.NoError(t, err)
	store := sessionstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, access, "no-jwt", "maria"))
	uc := auth.NewSessionUseCase(&fakeGateway{}, store, nil)

	st, err := uc.Status(ctx)
	require.NoError(t, err)

	assert.True(t, st.LoggedIn)
	assert.Equal(t, "maria", st.Username)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), st.AccessExpiresAt, 5*time.Second)
	assert.True(t, st.RefreshExpiresAt.IsZero(), "token ilegible = sin expiración conocida")
}
