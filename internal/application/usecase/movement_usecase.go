package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
)

const (
	msgInsufficientStock = "Quantidade de saída maior que o estoque disponível."
	msgNegativeStock     = "Operação deixaria o estoque do produto negativo."
)

// MovementUseCase registra movimentações de forma transaccional: bloquea la fila del
// producto (SELECT FOR UPDATE), ajusta quantidade_estoque y guarda el movimiento en la
// misma transacción.
type MovementUseCase struct {
	txRunner TxRunner
	repo     repository.MovementRepository
	now      func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, repo: repo, now: time.Now}
}

type movementFields struct {
	produtoID  int64
	tipo       string
	quantidade int
}

func validateMovement(in dto.MovementInput) (movementFields, error) {
	errs := FieldErrors{}
	var out movementFields
	if in.Produto == nil {
		errs.add("produto", msgRequired)
	} else {
		out.produtoID = *in.Produto
	}
	switch {
	case in.Tipo == nil:
		errs.add("tipo", msgRequired)
	case !entity.ValidMovementType(*in.Tipo):
		errs.add("tipo", fmt.Sprintf("\"%s\" não é um escolha válido.", *in.Tipo))
	default:
		out.tipo = *in.Tipo
	}
	switch {
	case in.Quantidade == nil:
		errs.add("quantidade", msgRequired)
	case *in.Quantidade < 0:
		errs.add("quantidade", "Certifique-se de que este valor seja maior ou igual a 0.")
	default:
		out.quantidade = *in.Quantidade
	}
	return out, errs.orNil()
}

func productNotFound(id int64) error {
	return FieldErrors{"produto": {fmt.Sprintf("Pk inválido \"%d\" - objeto não existe.", id)}}
}

// Create registra la movimentação del usuario y devuelve el alerta de estoque calculado
// después de aplicarla (estoque < mínimo).
func (uc *MovementUseCase) Create(ctx context.Context, userID int64, in dto.MovementInput) (*dto.MovementCreateResponse, error) {
	fields, err := validateMovement(in)
	if err != nil {
		return nil, err
	}
	var (
		mov     *entity.Movement
		product *entity.Product
	)
	err = uc.txRunner.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		product, err = products.GetForUpdate(ctx, fields.produtoID)
		if err != nil {
			return err
		}
		if product == nil {
			return productNotFound(fields.produtoID)
		}
		if fields.tipo == entity.MovementTypeSaida && fields.quantidade > product.QuantidadeEstoque {
			return detail(domain.ErrInsufficientStock, msgInsufficientStock)
		}
		mov = &entity.Movement{
			ProdutoID:        product.ID,
			UsuarioID:        userID,
			Tipo:             fields.tipo,
			Quantidade:       fields.quantidade,
			DataMovimentacao: uc.now(),
			ProdutoNome:      product.Nome,
		}
		product.QuantidadeEstoque += mov.Delta()
		if err := products.UpdateStock(ctx, product.ID, product.QuantidadeEstoque); err != nil {
			return err
		}
		return movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	out := &dto.MovementCreateResponse{Movimentacao: toMovementResponse(mov)}
	if product.QuantidadeEstoque < product.EstoqueMin {
		msg := fmt.Sprintf("Alerta: estoque do produto '%s' está abaixo do mínimo configurado.", product.Nome)
		out.AlertaEstoque = true
		out.MensagemAlerta = &msg
	}
	return out, nil
}

// Update deshace el efecto de la movimentação original y aplica el nuevo. El usuario que
// la registró no cambia.
func (uc *MovementUseCase) Update(ctx context.Context, id int64, in dto.MovementInput) (*dto.MovementResponse, error) {
	fields, err := validateMovement(in)
	if err != nil {
		return nil, err
	}
	var mov *entity.Movement
	err = uc.txRunner.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		mov, err = movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return detail(domain.ErrNotFound, msgNotFound)
		}
		locked, err := lockProducts(ctx, products, mov.ProdutoID, fields.produtoID)
		if err != nil {
			return err
		}
		target, ok := locked[fields.produtoID]
		if !ok {
			return productNotFound(fields.produtoID)
		}
		if old, ok := locked[mov.ProdutoID]; ok {
			old.QuantidadeEstoque -= mov.Delta()
		}
		mov.ProdutoID = fields.produtoID
		mov.Tipo = fields.tipo
		mov.Quantidade = fields.quantidade
		mov.ProdutoNome = target.Nome
		if fields.tipo == entity.MovementTypeSaida && fields.quantidade > target.QuantidadeEstoque {
			return detail(domain.ErrInsufficientStock, msgInsufficientStock)
		}
		target.QuantidadeEstoque += mov.Delta()
		if err := saveStock(ctx, products, locked); err != nil {
			return err
		}
		return movements.Update(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(mov)
	return &resp, nil
}

// Delete elimina la movimentação y revierte su efecto en el estoque.
func (uc *MovementUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		mov, err := movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return detail(domain.ErrNotFound, msgNotFound)
		}
		locked, err := lockProducts(ctx, products, mov.ProdutoID)
		if err != nil {
			return err
		}
		if p, ok := locked[mov.ProdutoID]; ok {
			p.QuantidadeEstoque -= mov.Delta()
			if err := saveStock(ctx, products, locked); err != nil {
				return err
			}
		}
		return movements.Delete(ctx, id)
	})
}

// GetByID obtiene una movimentação.
func (uc *MovementUseCase) GetByID(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	mov, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, detail(domain.ErrNotFound, msgNotFound)
	}
	resp := toMovementResponse(mov)
	return &resp, nil
}

// List movimentações de la más reciente a la más antigua.
func (uc *MovementUseCase) List(ctx context.Context) ([]dto.MovementResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// lockProducts bloquea los productos en orden de id para no cruzar bloqueos entre
// transacciones. Los ids inexistentes no aparecen en el mapa.
func lockProducts(ctx context.Context, products repository.ProductRepository, ids ...int64) (map[int64]*entity.Product, error) {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	locked := make(map[int64]*entity.Product, len(sorted))
	for _, id := range sorted {
		if _, ok := locked[id]; ok {
			continue
		}
		p, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			locked[id] = p
		}
	}
	return locked, nil
}

// saveStock persiste el estoque de los productos bloqueados; ninguno puede quedar negativo.
func saveStock(ctx context.Context, products repository.ProductRepository, locked map[int64]*entity.Product) error {
	for _, p := range locked {
		if p.QuantidadeEstoque < 0 {
			return detail(domain.ErrInsufficientStock, msgNegativeStock)
		}
	}
	for id, p := range locked {
		if err := products.UpdateStock(ctx, id, p.QuantidadeEstoque); err != nil {
			return err
		}
	}
	return nil
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		Produto:          m.ProdutoID,
		Usuario:          m.UsuarioID,
		Tipo:             m.Tipo,
		Quantidade:       m.Quantidade,
		DataMovimentacao: m.DataMovimentacao,
		ProdutoNome:      m.ProdutoNome,
	}
}
