package ports

import "context"

// SessionStore guarda los tokens del usuario entre peticiones (y entre ejecuciones si el
// backend es persistente). Se inyecta en cada componente que lo necesita.
//
// Un valor vacío equivale a ausente. Clear elimina los tres campos de una vez: ningún
// lector observa un estado parcialmente borrado.
type SessionStore interface {
	// Set reemplaza la sesión completa (login).
	Set(ctx context.Context, accessToken, refreshToken, username string) error
	// SetAccessToken reemplaza solo el access token (refresh). Sin sesión no hace nada.
	SetAccessToken(ctx context.Context, accessToken string) error
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	Username(ctx context.Context) (string, error)
	// Clear borra access token, refresh token y username (logout o sesión expirada).
	Clear(ctx context.Context) error
}
