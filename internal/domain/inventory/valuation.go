package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// StockValue valor del estoque de un producto (servicio de dominio).
// Valor = Preco * QuantidadeEstoque; un estoque negativo vale cero.
func StockValue(p entity.Product) decimal.Decimal {
	if p.QuantidadeEstoque <= 0 {
		return decimal.Zero
	}
	return p.Preco.Mul(decimal.NewFromInt(int64(p.QuantidadeEstoque)))
}

// TotalStockValue suma StockValue de todos los productos.
func TotalStockValue(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(StockValue(p))
	}
	return total
}
