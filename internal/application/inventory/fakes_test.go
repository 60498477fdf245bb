package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de los gateways
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovements struct {
	mu        sync.Mutex
	calls     int
	created   []dto.MovementRequest
	updated   map[int64]dto.MovementRequest
	deleted   []int64
	createErr error
	listErr   error
	alerta    bool
	mensagem  string
	list      []entity.Movement
}

func (f *fakeMovements) List(context.Context) ([]entity.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.list, f.listErr
}

func (f *fakeMovements) Create(_ context.Context, in dto.MovementRequest) (*ports.MovementCreated, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	m := entity.Movement{ID: int64(len(f.created)), ProdutoID: in.Produto, Tipo: in.Tipo, Quantidade: in.Quantidade, DataMovimentacao: time.Now()}
	f.list = append([]entity.Movement{m}, f.list...)
	return &ports.MovementCreated{Movement: m, AlertaEstoque: f.alerta, MensagemAlerta: f.mensagem}, nil
}

func (f *fakeMovements) Update(_ context.Context, id int64, in dto.MovementRequest) (*entity.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.updated == nil {
		f.updated = map[int64]dto.MovementRequest{}
	}
	f.updated[id] = in
	return &entity.Movement{ID: id, ProdutoID: in.Produto, Tipo: in.Tipo, Quantidade: in.Quantidade}, nil
}

func (f *fakeMovements) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.deleted = append(f.deleted, id)
	return f.createErr
}

type fakeProducts struct {
	mu       sync.Mutex
	calls    int
	list     []entity.Product
	listErr  error
	saveErr  error
	searched []string
	saved    []dto.ProductRequest
	savedIDs []int64
}

func (f *fakeProducts) List(context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := append([]entity.Product(nil), f.list...)
	return out, f.listErr
}

func (f *fakeProducts) Search(_ context.Context, term string) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.searched = append(f.searched, term)
	return f.list, f.listErr
}

func (f *fakeProducts) Get(_ context.Context, id int64) (*entity.Product, error) {
	p, _ := entity.FindProduct(f.list, id)
	return &p, nil
}

func (f *fakeProducts) Create(_ context.Context, in dto.ProductRequest) (*entity.Product, error) {
	return f.save(0, in)
}

func (f *fakeProducts) Update(_ context.Context, id int64, in dto.ProductRequest) (*entity.Product, error) {
	return f.save(id, in)
}

func (f *fakeProducts) save(id int64, in dto.ProductRequest) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, in)
	f.savedIDs = append(f.savedIDs, id)
	return &entity.Product{ID: id, Nome: in.Nome, Preco: in.Preco, EstoqueMin: in.EstoqueMin}, nil
}

func (f *fakeProducts) Delete(context.Context, int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.saveErr
}

type fakeNotifier struct {
	got []entity.LowStockAdvisory
	err error
}

func (f *fakeNotifier) NotifyLowStock(_ context.Context, adv entity.LowStockAdvisory) error {
	f.got = append(f.got, adv)
	return f.err
}
