package repository

import (
	"context"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimentações de estoque.
type MovementRepository interface {
	// Create asigna ID y DataMovimentacao si vienen vacíos.
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id int64) error
	// List de la más reciente a la más antigua, con ProdutoNome relleno.
	List(ctx context.Context) ([]*entity.Movement, error)
	ExistsForProduct(ctx context.Context, produtoID int64) (bool, error)
}
