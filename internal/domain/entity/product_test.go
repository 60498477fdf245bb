package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

func TestProduct_LowStockIncluyeElMinimo(t *testing.T) {
	assert.True(t, entity.Product{QuantidadeEstoque: 6, EstoqueMin: 6}.LowStock(), "igual al mínimo es estoque bajo")
	assert.True(t, entity.Product{QuantidadeEstoque: 2, EstoqueMin: 6}.LowStock())
	assert.False(t, entity.Product{QuantidadeEstoque: 7, EstoqueMin: 6}.LowStock())
}

func TestProduct_ProjectedAfterExit(t *testing.T) {
	p := entity.Product{QuantidadeEstoque: 10, EstoqueMin: 6}
	assert.Equal(t, 5, p.ProjectedAfterExit(5))
	assert.Equal(t, 12, p.ProjectedAfterExit(-2), "cantidades negativas no se validan aquí")
}

func TestFindProduct(t *testing.T) {
	lista := []entity.Product{{ID: 1, Nome: "Caneta"}, {ID: 2, Nome: "Lápis"}}

	p, ok := entity.FindProduct(lista, 2)
	assert.True(t, ok)
	assert.Equal(t, "Lápis", p.Nome)

	_, ok = entity.FindProduct(lista, 99)
	assert.False(t, ok)
}

func TestMovement_Delta(t *testing.T) {
	assert.Equal(t, -3, entity.Movement{Tipo: entity.MovementTypeSaida, Quantidade: 3}.Delta())
	assert.Equal(t, 3, entity.Movement{Tipo: entity.MovementTypeEntrada, Quantidade: 3}.Delta())
	assert.True(t, entity.ValidMovementType("saida"))
	assert.False(t, entity.ValidMovementType("ajuste"))
}
