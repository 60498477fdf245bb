package usecase

import (
	"sort"
	"strings"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/domain"
)

// Mensajes de validación con el texto del backend original.
const (
	msgRequired = "Este campo é obrigatório."
	msgNotFound = "Não encontrado."
)

// FieldErrors errores de validación por campo. El handler responde 400 con el mapa tal cual.
type FieldErrors dto.FieldErrors

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], " "))
	}
	return strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error { return domain.ErrInvalidInput }

func (f FieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// DetailError error con mensaje para el cuerpo {"detail": ...}. Err decide el status.
type DetailError struct {
	Err    error
	Detail string
}

func (e *DetailError) Error() string { return e.Detail }
func (e *DetailError) Unwrap() error { return e.Err }

func detail(err error, msg string) error {
	return &DetailError{Err: err, Detail: msg}
}
