package repository

import (
	"context"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	GetByNome(ctx context.Context, nome string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id int64, quantidade int) error
	// List ordena por nome; search filtra por nome o descricao (sin distinguir mayúsculas).
	List(ctx context.Context, search string) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
