package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, nome, descricao, preco, quantidade_estoque, estoque_min`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y rellena su ID.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO produtos (nome, descricao, preco, quantidade_estoque, estoque_min)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, p.Nome, p.Descricao, p.Preco, p.QuantidadeEstoque, p.EstoqueMin).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM produtos WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM produtos WHERE id = $1 FOR UPDATE`, id)
}

// GetByNome obtiene un producto por nome exacto.
func (r *ProductRepo) GetByNome(ctx context.Context, nome string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM produtos WHERE nome = $1`, nome)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return p, nil
}

// Update actualiza todos los campos del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE produtos SET nome = $2, descricao = $3, preco = $4, quantidade_estoque = $5, estoque_min = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Nome, p.Descricao, p.Preco, p.QuantidadeEstoque, p.EstoqueMin)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update produto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock actualiza solo quantidade_estoque (usado por las movimentações).
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, quantidade int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE produtos SET quantidade_estoque = $2 WHERE id = $1`, id, quantidade)
	if err != nil {
		return fmt.Errorf("update estoque: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por nome; search filtra por nome o descricao con ILIKE.
func (r *ProductRepo) List(ctx context.Context, search string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM produtos
		WHERE $1 = '' OR nome ILIKE '%' || $1 || '%' OR descricao ILIKE '%' || $1 || '%'
		ORDER BY nome, id`
	rows, err := r.q.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete produto: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Nome, &p.Descricao, &p.Preco, &p.QuantidadeEstoque, &p.EstoqueMin); err != nil {
		return nil, err
	}
	return &p, nil
}
