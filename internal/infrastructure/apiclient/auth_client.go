package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/application/ports"
)

// Verificar en tiempo de compilación que AuthClient implementa AuthGateway.
var _ ports.AuthGateway = (*AuthClient)(nil)

// AuthClient adaptador de los endpoints /api/auth/.
type AuthClient struct {
	api *Client
}

// NewAuthClient construye el adaptador sobre el cliente autenticado compartido.
func NewAuthClient(api *Client) *AuthClient {
	return &AuthClient{api: api}
}

// Login no lleva Authorization ni pasa por el refresh: un 401 aquí son credenciales inválidas.
func (a *AuthClient) Login(ctx context.Context, username, password string) (dto.TokenPair, error) {
	body, err := encodeBody(dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return dto.TokenPair{}, err
	}
	resp, err := a.api.t.send(ctx, http.MethodPost, pathLogin, body, "")
	if err != nil {
		return dto.TokenPair{}, err
	}
	if !resp.ok() {
		return dto.TokenPair{}, apiError(resp)
	}
	var out dto.TokenPair
	if err := decodeBody(resp, &out); err != nil {
		return dto.TokenPair{}, err
	}
	if out.Access == "" || out.Refresh == "" {
		return dto.TokenPair{}, fmt.Errorf("apiclient: login sin tokens")
	}
	return out, nil
}

// Logout revoca el refresh token. El endpoint exige sesión, así que usa el cliente autenticado.
func (a *AuthClient) Logout(ctx context.Context, refreshToken string) error {
	var out dto.DetailResponse
	if err := a.api.Post(ctx, pathLogout, dto.RefreshRequest{Refresh: refreshToken}, &out); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
