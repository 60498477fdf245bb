package apiclient

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

var _ ports.MovementGateway = (*MovementClient)(nil)

const pathMovimentacoes = "/api/movimentacoes/"

// MovementClient adaptador REST de /api/movimentacoes/.
type MovementClient struct {
	api *Client
}

// NewMovementClient construye el adaptador.
func NewMovementClient(api *Client) *MovementClient {
	return &MovementClient{api: api}
}

func movementPath(id int64) string {
	return fmt.Sprintf("%s%d/", pathMovimentacoes, id)
}

// List GET /api/movimentacoes/ (más recientes primero).
func (c *MovementClient) List(ctx context.Context) ([]entity.Movement, error) {
	var out []dto.MovementResponse
	if err := c.api.Get(ctx, pathMovimentacoes, &out); err != nil {
		return nil, fmt.Errorf("listar movimentações: %w", err)
	}
	return toMovements(out), nil
}

// Create POST /api/movimentacoes/. La respuesta trae el alerta de estoque del servidor.
func (c *MovementClient) Create(ctx context.Context, in dto.MovementRequest) (*ports.MovementCreated, error) {
	var out dto.MovementCreateResponse
	if err := c.api.Post(ctx, pathMovimentacoes, in, &out); err != nil {
		return nil, fmt.Errorf("criar movimentação: %w", err)
	}
	res := &ports.MovementCreated{
		Movement:      toMovement(out.Movimentacao),
		AlertaEstoque: out.AlertaEstoque,
	}
	if out.MensagemAlerta != nil {
		res.MensagemAlerta = *out.MensagemAlerta
	}
	return res, nil
}

// Update PUT /api/movimentacoes/{id}/. Devuelve la movimentação sin envoltorio ni alerta.
func (c *MovementClient) Update(ctx context.Context, id int64, in dto.MovementRequest) (*entity.Movement, error) {
	var out dto.MovementResponse
	if err := c.api.Put(ctx, movementPath(id), in, &out); err != nil {
		return nil, fmt.Errorf("atualizar movimentação %d: %w", id, err)
	}
	m := toMovement(out)
	return &m, nil
}

// Delete DELETE /api/movimentacoes/{id}/.
func (c *MovementClient) Delete(ctx context.Context, id int64) error {
	if err := c.api.Delete(ctx, movementPath(id)); err != nil {
		return fmt.Errorf("excluir movimentação %d: %w", id, err)
	}
	return nil
}
