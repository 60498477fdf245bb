package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-cliente/internal/application/inventory"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/sessionstore"
)

func TestSave_CamposObligatorios(t *testing.T) {
	gw := &fakeProducts{}
	uc := inventory.NewProductUseCase(gw, nil)

	casos := []inventory.ProductForm{
		{Preco: "1", EstoqueMin: "1"},
		{Nome: "Caneta", EstoqueMin: "1"},
		{Nome: "Caneta", Preco: "1"},
		{Nome: "Caneta", Preco: "abc", EstoqueMin: "1"},
		{Nome: "Caneta", Preco: "1", EstoqueMin: "um"},
	}
	for _, f := range casos {
		_, err := uc.Save(context.Background(), f)
		assert.ErrorIs(t, err, domain.ErrValidation, "%+v", f)
	}
	assert.Zero(t, gw.calls)
}

func TestSave_PrecoConComaYEstoqueVacio(t *testing.T) {
	gw := &fakeProducts{}
	uc := inventory.NewProductUseCase(gw, nil)

	_, err := uc.Save(context.Background(), inventory.ProductForm{Nome: " Caneta ", Preco: "2,50", EstoqueMin: "6"})
	require.NoError(t, err)

	require.Len(t, gw.saved, 1)
	assert.Equal(t, "Caneta", gw.saved[0].Nome)
	assert.True(t, decimal.RequireFromString("2.50").Equal(gw.saved[0].Preco))
	assert.Equal(t, 0, gw.saved[0].QuantidadeEstoque)
	assert.Equal(t, int64(0), gw.savedIDs[0], "sin id se crea")
}

func TestSave_ConIDActualiza(t *testing.T) {
	gw := &fakeProducts{}
	uc := inventory.NewProductUseCase(gw, nil)

	form := inventory.FormFromProduct(entity.Product{ID: 4, Nome: "Lápis", Preco: decimal.RequireFromString("0.9"), EstoqueMin: 2, QuantidadeEstoque: 8})
	assert.Equal(t, "0.90", form.Preco)

	_, err := uc.Save(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, int64(4), gw.savedIDs[0])
	assert.Equal(t, 8, gw.saved[0].QuantidadeEstoque)
}

func TestSave_NombreDuplicado(t *testing.T) {
	gw := &fakeProducts{saveErr: &domain.APIError{Status: 400, Detail: "Produto com nome 'Caneta' já existe."}}
	uc := inventory.NewProductUseCase(gw, nil)

	_, err := uc.Save(context.Background(), inventory.ProductForm{Nome: "Caneta", Preco: "1", EstoqueMin: "1"})

	assert.ErrorIs(t, err, domain.ErrSubmissionFailed)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Produto com nome 'Caneta' já existe.", domain.Detail(err))
}

func TestSearch_EnviaElTerminoSinFiltrar(t *testing.T) {
	gw := &fakeProducts{list: []entity.Product{{ID: 1, Nome: "Caneta"}}}
	uc := inventory.NewProductUseCase(gw, nil)

	for _, term := range []string{"can", "can", ""} {
		got, err := uc.Search(context.Background(), term)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, []string{"can", "can", ""}, gw.searched, "cada búsqueda es una petición")
}

func TestSortByNome_Acentos(t *testing.T) {
	lista := []entity.Product{{Nome: "borracha"}, {Nome: "Caneta"}, {Nome: "Álcool"}, {Nome: "apontador"}}

	inventory.SortByNome(lista)

	var nomes []string
	for _, p := range lista {
		nomes = append(nomes, p.Nome)
	}
	assert.Equal(t, []string{"Álcool", "apontador", "borracha", "Caneta"}, nomes)
}

func TestListSorted_NoCambiaLaListaDelGateway(t *testing.T) {
	gw := &fakeProducts{list: []entity.Product{{ID: 2, Nome: "Zinco"}, {ID: 1, Nome: "Alfinete"}}}
	uc := inventory.NewProductUseCase(gw, nil)

	got, err := uc.ListSorted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alfinete", got[0].Nome)

	raw, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Zinco", raw[0].Nome, "List conserva el orden del servidor")
}

type fakeReport struct {
	products []entity.Product
	username string
}

func (f *fakeReport) GenerateStockReport(_ context.Context, products []entity.Product, username string, _ time.Time) ([]byte, error) {
	f.products = products
	f.username = username
	return []byte("%PDF-1.4"), nil
}

func TestReport(t *testing.T) {
	gw := &fakeProducts{list: []entity.Product{{Nome: "Zinco"}, {Nome: "Alfinete"}}}
	rep := &fakeReport{}

	pdf, err := inventory.NewProductUseCase(gw, rep).Report(context.Background(), "maria")
	require.NoError(t, err)

	assert.Equal(t, "%PDF-1.4", string(pdf))
	assert.Equal(t, "maria", rep.username)
	assert.Equal(t, "Alfinete", rep.products[0].Nome)

	_, err = inventory.NewProductUseCase(gw, nil).Report(context.Background(), "maria")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Overview
// ──────────────────────────────────────────────────────────────────────────────

func TestOverview_SinUsuario(t *testing.T) {
	gw := &fakeProducts{}
	uc := inventory.NewOverviewUseCase(sessionstore.NewMemoryStore(), gw, &fakeMovements{})

	_, err := uc.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Zero(t, gw.calls)
}

func TestOverview_CargaListasYEstoqueBajo(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "a", "r", "maria"))
	prods := &fakeProducts{list: []entity.Product{
		{ID: 1, Nome: "Caneta", QuantidadeEstoque: 10, EstoqueMin: 6},
		{ID: 2, Nome: "Borracha", QuantidadeEstoque: 3, EstoqueMin: 5},
	}}
	movs := &fakeMovements{list: []entity.Movement{{ID: 1, ProdutoID: 2, Tipo: "saida", Quantidade: 2}}}

	ov, err := inventory.NewOverviewUseCase(store, prods, movs).Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, "maria", ov.Username)
	assert.Equal(t, "Borracha", ov.Products[0].Nome)
	assert.Len(t, ov.Movements, 1)
	require.Len(t, ov.LowStock, 1)
	assert.Equal(t, int64(2), ov.LowStock[0].ID)
}

func TestOverview_FalloDeUnaLista(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "a", "r", "maria"))
	movs := &fakeMovements{listErr: errors.New("HTTP 500")}

	_, err := inventory.NewOverviewUseCase(store, &fakeProducts{}, movs).Load(ctx)
	assert.Error(t, err)
}
