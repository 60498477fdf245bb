package entity

import "github.com/shopspring/decimal"

// Product representa un producto del estoque.
// QuantidadeEstoque <= EstoqueMin es una condición de aviso (estoque bajo), no un error.
type Product struct {
	ID                int64
	Nome              string
	Descricao         string
	Preco             decimal.Decimal // 10 dígitos, 2 decimales
	QuantidadeEstoque int
	EstoqueMin        int
}

// LowStock indica si el estoque actual está en o por debajo del mínimo.
func (p Product) LowStock() bool {
	return p.QuantidadeEstoque <= p.EstoqueMin
}

// ProjectedAfterExit estoque resultante de una salida de quantidade unidades.
func (p Product) ProjectedAfterExit(quantidade int) int {
	return p.QuantidadeEstoque - quantidade
}

// FindProduct busca por id en una lista ya cargada. Devuelve false si no está.
func FindProduct(products []Product, id int64) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
