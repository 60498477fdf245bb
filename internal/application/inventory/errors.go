package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/estoque-cliente/internal/domain"
)

// submissionError clasifica el fallo de una escritura. Sesión, red y cancelación se
// devuelven tal cual para que la CLI actúe (re-login, aviso de conexión); el resto es
// ErrSubmissionFailed conservando el detalle del backend.
func submissionError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrNetwork),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrSubmissionFailed, err)
	}
}
