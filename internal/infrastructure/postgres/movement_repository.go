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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementSelect = `
	SELECT m.id, m.produto_id, m.usuario_id, m.tipo, m.quantidade, m.data_movimentacao, p.nome
	FROM movimentacoes m
	JOIN produtos p ON p.id = m.produto_id`

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimentações. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste la movimentação; la fecha la pone la base si viene vacía.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movimentacoes (produto_id, usuario_id, tipo, quantidade, data_movimentacao)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		RETURNING id, data_movimentacao`
	var data any
	if !m.DataMovimentacao.IsZero() {
		data = m.DataMovimentacao
	}
	err := r.q.QueryRow(ctx, query, m.ProdutoID, m.UsuarioID, m.Tipo, m.Quantidade, data).
		Scan(&m.ID, &m.DataMovimentacao)
	if err != nil {
		return fmt.Errorf("insert movimentação: %w", err)
	}
	return nil
}

// GetByID obtiene una movimentação con el nome del producto.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, movementSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimentação: %w", err)
	}
	return m, nil
}

// Update cambia produto, tipo y quantidade. Usuario y fecha no cambian.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE movimentacoes SET produto_id = $2, tipo = $3, quantidade = $4 WHERE id = $1`,
		m.ID, m.ProdutoID, m.Tipo, m.Quantidade,
	)
	if err != nil {
		return fmt.Errorf("update movimentação: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una movimentação por ID.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movimentacoes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete movimentação: %w", err)
	}
	return nil
}

// List de la más reciente a la más antigua.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, movementSelect+` ORDER BY m.data_movimentacao DESC, m.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list movimentações: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimentação: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ExistsForProduct indica si el producto tiene movimentações registradas.
func (r *MovementRepo) ExistsForProduct(ctx context.Context, produtoID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movimentacoes WHERE produto_id = $1)`, produtoID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists movimentação: %w", err)
	}
	return exists, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	if err := row.Scan(&m.ID, &m.ProdutoID, &m.UsuarioID, &m.Tipo, &m.Quantidade, &m.DataMovimentacao, &m.ProdutoNome); err != nil {
		return nil, err
	}
	return &m, nil
}
