package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain"
)

// Rutas fijas de autenticación.
const (
	pathLogin   = "/api/auth/login/"
	pathRefresh = "/api/auth/refresh/"
	pathLogout  = "/api/auth/logout/"
)

// Client cliente HTTP autenticado compartido por todos los clientes de recursos.
// Adjunta el access token de la sesión y, ante un 401, renueva el token una sola vez
// y repite la petición original.
//
// Es seguro para uso concurrente: varios 401 simultáneos con el mismo refresh token
// comparten una única llamada de refresh.
type Client struct {
	t     *transport
	store ports.SessionStore
	group singleflight.Group
}

// NewClient construye el cliente autenticado.
func NewClient(opts Options, store ports.SessionStore) *Client {
	return &Client{t: newTransport(opts), store: store}
}

// Do envía method path con in como cuerpo JSON (nil = sin cuerpo) y decodifica la
// respuesta 2xx en out (nil = descartar).
//
//   - sin access token: domain.ErrUnauthenticated, sin petición.
//   - 401 con refresh token: un refresh y un único reintento con el mismo método, ruta y cuerpo.
//   - refresh fallido: la sesión se borra entera y se devuelve domain.ErrSessionExpired.
//   - 401 sin refresh token, 401 tras el reintento y cualquier otro status: *domain.APIError.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	access, err := c.store.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("apiclient: leer sesión: %w", err)
	}
	if access == "" {
		return domain.ErrUnauthenticated
	}
	body, err := encodeBody(in)
	if err != nil {
		return err
	}

	resp, err := c.t.send(ctx, method, path, body, access)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized {
		newAccess, err := c.currentOrRenewed(ctx, access)
		if err != nil {
			return err
		}
		if newAccess == "" {
			return apiError(resp)
		}
		c.t.log.Debug().Str("method", method).Str("path", path).Msg("reintento tras refresh")
		resp, err = c.t.send(ctx, method, path, body, newAccess)
		if err != nil {
			return err
		}
	}

	if !resp.ok() {
		return apiError(resp)
	}
	return decodeBody(resp, out)
}

// currentOrRenewed devuelve el access token con el que repetir una petición rechazada
// con sent. Si otra petición ya lo renovó se usa el guardado; si no, se hace refresh.
// "" sin error = no hay refresh token y el 401 se propaga.
func (c *Client) currentOrRenewed(ctx context.Context, sent string) (string, error) {
	stored, err := c.store.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("apiclient: leer sesión: %w", err)
	}
	if stored != "" && stored != sent {
		return stored, nil
	}
	refresh, err := c.store.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("apiclient: leer sesión: %w", err)
	}
	if refresh == "" {
		return "", nil
	}
	return c.renewAccess(ctx, refresh)
}

// renewAccess obtiene un access token nuevo y lo guarda. El refresh compartido corre
// desacoplado de la cancelación de cada llamador (lo acota el timeout del transporte):
// quien cancela deja de esperar sin afectar al resto. Solo un refresh rechazado o
// fallido borra la sesión y devuelve ErrSessionExpired.
func (c *Client) renewAccess(ctx context.Context, refresh string) (string, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(refresh, func() (interface{}, error) {
		access, err := c.refreshToken(detached, refresh)
		if err != nil {
			return "", err
		}
		if err := c.store.SetAccessToken(detached, access); err != nil {
			return "", fmt.Errorf("apiclient: guardar access token: %w", err)
		}
		return access, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("apiclient: refresh: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
			return "", fmt.Errorf("apiclient: refresh: %w", res.Err)
		}
		if clearErr := c.store.Clear(detached); clearErr != nil {
			c.t.log.Error().Err(clearErr).Msg("no se pudo borrar la sesión expirada")
		}
		c.t.log.Info().Err(res.Err).Msg("refresh rechazado, sesión borrada")
		return "", fmt.Errorf("%w: %w", domain.ErrSessionExpired, res.Err)
	}
	return res.Val.(string), nil
}

// refreshToken POST /api/auth/refresh/ sin Authorization.
func (c *Client) refreshToken(ctx context.Context, refresh string) (string, error) {
	body, err := encodeBody(dto.RefreshRequest{Refresh: refresh})
	if err != nil {
		return "", err
	}
	resp, err := c.t.send(ctx, http.MethodPost, pathRefresh, body, "")
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", apiError(resp)
	}
	var out dto.AccessResponse
	if err := decodeBody(resp, &out); err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", errors.New("apiclient: refresh sin access token")
	}
	return out.Access, nil
}

// Get atajo de Do para GET.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post atajo de Do para POST.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, in, out)
}

// Put atajo de Do para PUT.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, in, out)
}

// Delete atajo de Do para DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
