package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimentações en memoria.
type MovementRepo struct {
	s    *Store
	inTx bool
}

// NewMovementRepository construye el repositorio fuera de transacción.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.withLock(r.inTx, func() {
		r.s.seq.movement++
		m.ID = r.s.seq.movement
		if m.DataMovimentacao.IsZero() {
			m.DataMovimentacao = time.Now()
		}
		r.s.movements[m.ID] = *m
	})
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id int64) (*entity.Movement, error) {
	var out *entity.Movement
	r.s.withLock(r.inTx, func() {
		if m, ok := r.s.movements[id]; ok {
			m.ProdutoNome = r.s.products[m.ProdutoID].Nome
			out = &m
		}
	})
	return out, nil
}

func (r *MovementRepo) Update(_ context.Context, m *entity.Movement) error {
	var err error
	r.s.withLock(r.inTx, func() {
		if _, ok := r.s.movements[m.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		r.s.movements[m.ID] = *m
	})
	return err
}

func (r *MovementRepo) Delete(_ context.Context, id int64) error {
	r.s.withLock(r.inTx, func() {
		delete(r.s.movements, id)
	})
	return nil
}

func (r *MovementRepo) List(_ context.Context) ([]*entity.Movement, error) {
	var out []*entity.Movement
	r.s.withLock(r.inTx, func() {
		for _, m := range r.s.movements {
			m.ProdutoNome = r.s.products[m.ProdutoID].Nome
			out = append(out, &m)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].DataMovimentacao.Equal(out[j].DataMovimentacao) {
			return out[i].ID > out[j].ID
		}
		return out[i].DataMovimentacao.After(out[j].DataMovimentacao)
	})
	return out, nil
}

func (r *MovementRepo) ExistsForProduct(_ context.Context, produtoID int64) (bool, error) {
	var found bool
	r.s.withLock(r.inTx, func() {
		for _, m := range r.s.movements {
			if m.ProdutoID == produtoID {
				found = true
				return
			}
		}
	})
	return found, nil
}
