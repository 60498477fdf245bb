package dto

import "time"

// MovementRequest cuerpo de POST/PUT /api/movimentacoes/.
type MovementRequest struct {
	Produto    int64  `json:"produto"`
	Tipo       string `json:"tipo"`
	Quantidade int    `json:"quantidade"`
}

// MovementResponse movimentação tal como la devuelve la API.
type MovementResponse struct {
	ID               int64     `json:"id"`
	Produto          int64     `json:"produto"`
	Usuario          int64     `json:"usuario,omitempty"`
	Tipo             string    `json:"tipo"`
	Quantidade       int       `json:"quantidade"`
	DataMovimentacao time.Time `json:"data_movimentacao"`
	ProdutoNome      string    `json:"produto_nome,omitempty"`
}

// MovementCreateResponse respuesta 201 del POST: la movimentação más el alerta de estoque
// calculado por el servidor después de aplicar el movimiento.
type MovementCreateResponse struct {
	Movimentacao   MovementResponse `json:"movimentacao"`
	AlertaEstoque  bool             `json:"alerta_estoque"`
	MensagemAlerta *string          `json:"mensagem_alerta"`
}

// MovementInput cuerpo recibido por el servidor de desarrollo.
type MovementInput struct {
	Produto    *int64  `json:"produto"`
	Tipo       *string `json:"tipo"`
	Quantidade *int    `json:"quantidade"`
}
