package inventory

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// Overview datos de la pantalla inicial.
type Overview struct {
	Username  string
	Products  []entity.Product // ordenados por nome
	Movements []entity.Movement
	LowStock  []entity.Product
}

// OverviewUseCase carga productos y movimentações en paralelo para la pantalla inicial.
type OverviewUseCase struct {
	store     ports.SessionStore
	products  ports.ProductGateway
	movements ports.MovementGateway
}

// NewOverviewUseCase construye el caso de uso.
func NewOverviewUseCase(store ports.SessionStore, products ports.ProductGateway, movements ports.MovementGateway) *OverviewUseCase {
	return &OverviewUseCase{store: store, products: products, movements: movements}
}

// Load exige usuario en sesión (como la pantalla inicial) y pide ambas listas a la vez.
// Si una falla se cancela la otra.
func (uc *OverviewUseCase) Load(ctx context.Context) (*Overview, error) {
	username, err := uc.store.Username(ctx)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, domain.ErrUnauthenticated
	}

	out := &Overview{Username: username}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := uc.products.List(gctx)
		if err != nil {
			return err
		}
		SortByNome(products)
		out.Products = products
		return nil
	})
	g.Go(func() error {
		movements, err := uc.movements.List(gctx)
		if err != nil {
			return err
		}
		out.Movements = movements
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.LowStock = LowStock(out.Products)
	return out, nil
}
