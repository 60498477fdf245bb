package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation        = errors.New("campos obrigatórios não preenchidos")
	ErrUnauthenticated   = errors.New("sessão não iniciada")
	ErrSessionExpired    = errors.New("sessão expirada, faça login novamente")
	ErrSubmissionFailed  = errors.New("erro ao salvar")
	ErrNetwork           = errors.New("sem resposta do servidor")
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("não autorizado")
	ErrForbidden         = errors.New("acesso negado")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrInsufficientStock = errors.New("quantidade de saída maior que o estoque disponível")
)

// APIError respuesta de error del backend REST (status distinto de 2xx).
// Detail es el mensaje legible ("detail" de DRF o el primer error de campo).
type APIError struct {
	Status int
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Unwrap permite errors.Is(err, domain.ErrNotFound) y similares según el status.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return ErrInvalidInput
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return nil
	}
}

// IsStatus indica si err es un APIError con el status dado.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Detail devuelve el mensaje del backend si err es un APIError, o err.Error() en otro caso.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}
