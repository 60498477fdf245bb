package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

var _ ports.ProductGateway = (*ProductClient)(nil)

const pathProdutos = "/api/produtos/"

// ProductClient adaptador REST de /api/produtos/.
type ProductClient struct {
	api *Client
}

// NewProductClient construye el adaptador.
func NewProductClient(api *Client) *ProductClient {
	return &ProductClient{api: api}
}

func productPath(id int64) string {
	return fmt.Sprintf("%s%d/", pathProdutos, id)
}

// List GET /api/produtos/.
func (c *ProductClient) List(ctx context.Context) ([]entity.Product, error) {
	var out []dto.ProductResponse
	if err := c.api.Get(ctx, pathProdutos, &out); err != nil {
		return nil, fmt.Errorf("listar produtos: %w", err)
	}
	return toProducts(out), nil
}

// Search GET /api/produtos/?search=term. El parámetro se envía siempre, aunque term esté vacío.
func (c *ProductClient) Search(ctx context.Context, term string) ([]entity.Product, error) {
	q := url.Values{}
	q.Set("search", term)
	var out []dto.ProductResponse
	if err := c.api.Get(ctx, pathProdutos+"?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("buscar produtos: %w", err)
	}
	return toProducts(out), nil
}

// Get GET /api/produtos/{id}/.
func (c *ProductClient) Get(ctx context.Context, id int64) (*entity.Product, error) {
	var out dto.ProductResponse
	if err := c.api.Get(ctx, productPath(id), &out); err != nil {
		return nil, fmt.Errorf("obter produto %d: %w", id, err)
	}
	p := toProduct(out)
	return &p, nil
}

// Create POST /api/produtos/.
func (c *ProductClient) Create(ctx context.Context, in dto.ProductRequest) (*entity.Product, error) {
	var out dto.ProductResponse
	if err := c.api.Post(ctx, pathProdutos, in, &out); err != nil {
		return nil, fmt.Errorf("criar produto: %w", err)
	}
	p := toProduct(out)
	return &p, nil
}

// Update PUT /api/produtos/{id}/.
func (c *ProductClient) Update(ctx context.Context, id int64, in dto.ProductRequest) (*entity.Product, error) {
	var out dto.ProductResponse
	if err := c.api.Put(ctx, productPath(id), in, &out); err != nil {
		return nil, fmt.Errorf("atualizar produto %d: %w", id, err)
	}
	p := toProduct(out)
	return &p, nil
}

// Delete DELETE /api/produtos/{id}/. El backend rechaza con 400 si hay movimentações.
func (c *ProductClient) Delete(ctx context.Context, id int64) error {
	if err := c.api.Delete(ctx, productPath(id)); err != nil {
		return fmt.Errorf("excluir produto %d: %w", id, err)
	}
	return nil
}
