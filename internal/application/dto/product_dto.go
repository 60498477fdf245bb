package dto

import "github.com/shopspring/decimal"

// ProductRequest cuerpo de POST/PUT /api/produtos/.
type ProductRequest struct {
	Nome              string          `json:"nome"`
	Descricao         string          `json:"descricao"`
	Preco             decimal.Decimal `json:"preco"`
	QuantidadeEstoque int             `json:"quantidade_estoque"`
	EstoqueMin        int             `json:"estoque_min"`
}

// ProductResponse producto tal como lo devuelve la API. Preco llega como string ("12.50").
type ProductResponse struct {
	ID                int64           `json:"id"`
	Nome              string          `json:"nome"`
	Descricao         string          `json:"descricao"`
	Preco             decimal.Decimal `json:"preco"`
	QuantidadeEstoque int             `json:"quantidade_estoque"`
	EstoqueMin        int             `json:"estoque_min"`
}

// ProductInput cuerpo recibido por el servidor de desarrollo. Los punteros distinguen
// campo ausente de valor cero para validar como el backend original.
type ProductInput struct {
	Nome              *string          `json:"nome"`
	Descricao         *string          `json:"descricao"`
	Preco             *decimal.Decimal `json:"preco"`
	QuantidadeEstoque *int             `json:"quantidade_estoque"`
	EstoqueMin        *int             `json:"estoque_min"`
}
