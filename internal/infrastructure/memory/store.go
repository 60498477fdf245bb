// Package memory implementa los repositorios del servidor de desarrollo en memoria.
// Un único mutex serializa todas las transacciones.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
)

// Store datos compartidos por los repositorios.
type Store struct {
	mu        sync.Mutex
	products  map[int64]entity.Product
	movements map[int64]entity.Movement
	users     map[int64]entity.User
	revoked   map[string]time.Time
	seq       struct{ product, movement, user int64 }
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		products:  map[int64]entity.Product{},
		movements: map[int64]entity.Movement{},
		users:     map[int64]entity.User{},
		revoked:   map[string]time.Time{},
	}
}

// withLock ejecuta fn con el mutex tomado, salvo que ya lo tenga la transacción en curso.
func (s *Store) withLock(inTx bool, fn func()) {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

// TxRunner ejecuta callbacks con el store bloqueado. Si fn falla se restaura el estado previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run bloquea el store, ejecuta fn con repos atados a la "transacción" y deshace si falla.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	products := maps.Clone(r.s.products)
	movements := maps.Clone(r.s.movements)
	seq := r.s.seq
	if err := fn(&ProductRepo{s: r.s, inTx: true}, &MovementRepo{s: r.s, inTx: true}); err != nil {
		r.s.products = products
		r.s.movements = movements
		r.s.seq = seq
		return err
	}
	return nil
}
