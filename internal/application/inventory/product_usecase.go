package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// ProductUseCase casos de uso de produtos en el cliente.
type ProductUseCase struct {
	gateway ports.ProductGateway
	report  ports.StockReportGenerator
	now     func() time.Time
}

// NewProductUseCase construye el caso de uso. report puede ser nil si no se generan relatórios.
func NewProductUseCase(gateway ports.ProductGateway, report ports.StockReportGenerator) *ProductUseCase {
	return &ProductUseCase{gateway: gateway, report: report, now: time.Now}
}

// List productos en el orden del servidor.
func (uc *ProductUseCase) List(ctx context.Context) ([]entity.Product, error) {
	return uc.gateway.List(ctx)
}

// ListSorted productos ordenados por nome en el cliente (colación pt-BR). Es la lista que
// se usa para elegir producto al registrar una movimentação.
func (uc *ProductUseCase) ListSorted(ctx context.Context) ([]entity.Product, error) {
	products, err := uc.gateway.List(ctx)
	if err != nil {
		return nil, err
	}
	SortByNome(products)
	return products, nil
}

// Search filtra en el servidor (nome y descricao). Cada llamada es una petición nueva;
// término vacío devuelve la lista completa del servidor.
func (uc *ProductUseCase) Search(ctx context.Context, term string) ([]entity.Product, error) {
	return uc.gateway.Search(ctx, term)
}

// Get un producto por id.
func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*entity.Product, error) {
	return uc.gateway.Get(ctx, id)
}

// Save valida el formulario y crea (sin ID) o actualiza (con ID) el producto.
// Sin nome, preco o estoque_min: domain.ErrValidation sin petición.
func (uc *ProductUseCase) Save(ctx context.Context, form ProductForm) (*entity.Product, error) {
	in, err := form.parse()
	if err != nil {
		return nil, err
	}
	var p *entity.Product
	if in.id == 0 {
		p, err = uc.gateway.Create(ctx, in.req)
	} else {
		p, err = uc.gateway.Update(ctx, in.id, in.req)
	}
	if err != nil {
		return nil, submissionError("salvar produto", err)
	}
	return p, nil
}

// Delete elimina un producto. El backend lo impide si tiene movimentações.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.gateway.Delete(ctx, id); err != nil {
		return submissionError("excluir produto", err)
	}
	return nil
}

// Report genera el relatório de estoque en PDF con los productos ordenados por nome.
func (uc *ProductUseCase) Report(ctx context.Context, username string) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("relatório: generador no configurado")
	}
	products, err := uc.ListSorted(ctx)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateStockReport(ctx, products, username, uc.now())
}
