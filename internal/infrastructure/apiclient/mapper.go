package apiclient

import (
	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

func toProduct(in dto.ProductResponse) entity.Product {
	return entity.Product{
		ID:                in.ID,
		Nome:              in.Nome,
		Descricao:         in.Descricao,
		Preco:             in.Preco,
		QuantidadeEstoque: in.QuantidadeEstoque,
		EstoqueMin:        in.EstoqueMin,
	}
}

func toProducts(in []dto.ProductResponse) []entity.Product {
	out := make([]entity.Product, 0, len(in))
	for _, p := range in {
		out = append(out, toProduct(p))
	}
	return out
}

func toMovement(in dto.MovementResponse) entity.Movement {
	return entity.Movement{
		ID:               in.ID,
		ProdutoID:        in.Produto,
		UsuarioID:        in.Usuario,
		Tipo:             in.Tipo,
		Quantidade:       in.Quantidade,
		DataMovimentacao: in.DataMovimentacao,
		ProdutoNome:      in.ProdutoNome,
	}
}

func toMovements(in []dto.MovementResponse) []entity.Movement {
	out := make([]entity.Movement, 0, len(in))
	for _, m := range in {
		out = append(out, toMovement(m))
	}
	return out
}
