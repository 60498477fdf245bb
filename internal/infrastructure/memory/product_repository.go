package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. nome es único.
type ProductRepo struct {
	s    *Store
	inTx bool
}

// NewProductRepository construye el repositorio fuera de transacción.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	var err error
	r.s.withLock(r.inTx, func() {
		if r.nomeTaken(product.Nome, 0) {
			err = domain.ErrDuplicate
			return
		}
		r.s.seq.product++
		product.ID = r.s.seq.product
		r.s.products[product.ID] = *product
	})
	return err
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	r.s.withLock(r.inTx, func() {
		if p, ok := r.s.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: el bloqueo lo da el mutex de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByNome(_ context.Context, nome string) (*entity.Product, error) {
	var out *entity.Product
	r.s.withLock(r.inTx, func() {
		for _, p := range r.s.products {
			if p.Nome == nome {
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	var err error
	r.s.withLock(r.inTx, func() {
		if _, ok := r.s.products[product.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		if r.nomeTaken(product.Nome, product.ID) {
			err = domain.ErrDuplicate
			return
		}
		r.s.products[product.ID] = *product
	})
	return err
}

func (r *ProductRepo) UpdateStock(_ context.Context, id int64, quantidade int) error {
	var err error
	r.s.withLock(r.inTx, func() {
		p, ok := r.s.products[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		p.QuantidadeEstoque = quantidade
		r.s.products[id] = p
	})
	return err
}

func (r *ProductRepo) List(_ context.Context, search string) ([]*entity.Product, error) {
	term := strings.ToLower(search)
	var out []*entity.Product
	r.s.withLock(r.inTx, func() {
		for _, p := range r.s.products {
			if term != "" &&
				!strings.Contains(strings.ToLower(p.Nome), term) &&
				!strings.Contains(strings.ToLower(p.Descricao), term) {
				continue
			}
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Nome == out[j].Nome {
			return out[i].ID < out[j].ID
		}
		return out[i].Nome < out[j].Nome
	})
	return out, nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.withLock(r.inTx, func() {
		delete(r.s.products, id)
	})
	return nil
}

// nomeTaken requiere el mutex tomado.
func (r *ProductRepo) nomeTaken(nome string, except int64) bool {
	for id, p := range r.s.products {
		if id != except && p.Nome == nome {
			return true
		}
	}
	return false
}
