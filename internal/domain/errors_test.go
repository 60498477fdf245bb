package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-cliente/internal/domain"
)

func TestAPIError_UnwrapPorStatus(t *testing.T) {
	casos := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, domain.ErrInvalidInput},
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusConflict, domain.ErrConflict},
	}
	for _, c := range casos {
		err := fmt.Errorf("envuelto: %w", &domain.APIError{Status: c.status})
		assert.ErrorIs(t, err, c.want, "status %d", c.status)
	}

	err := &domain.APIError{Status: http.StatusInternalServerError}
	assert.Nil(t, errors.Unwrap(err), "500 no se asocia a ningún sentinel")
}

func TestDetail_PrefiereMensajeDelBackend(t *testing.T) {
	err := fmt.Errorf("salvar: %w", &domain.APIError{Status: 400, Detail: "Produto com nome 'X' já existe."})
	assert.Equal(t, "Produto com nome 'X' já existe.", domain.Detail(err))
	assert.True(t, domain.IsStatus(err, 400))
	assert.False(t, domain.IsStatus(err, 404))

	assert.Equal(t, domain.ErrNetwork.Error(), domain.Detail(domain.ErrNetwork))
	assert.Equal(t, "", domain.Detail(nil))
}
