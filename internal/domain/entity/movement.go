package entity

import "time"

// Tipos de movimentação de estoque.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSaida   = "saida"
)

// ValidMovementType indica si tipo es entrada o saida.
func ValidMovementType(tipo string) bool {
	return tipo == MovementTypeEntrada || tipo == MovementTypeSaida
}

// Movement representa una movimentação de estoque (entrada o saída).
// ProdutoNome es una copia desnormalizada del nombre del producto al listar.
type Movement struct {
	ID               int64
	ProdutoID        int64
	UsuarioID        int64
	Tipo             string
	Quantidade       int
	DataMovimentacao time.Time
	ProdutoNome      string
}

// Delta variación de estoque que produce el movimiento (negativa en saídas).
func (m Movement) Delta() int {
	if m.Tipo == MovementTypeSaida {
		return -m.Quantidade
	}
	return m.Quantidade
}
