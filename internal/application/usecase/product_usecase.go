package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
)

const (
	nomeMaxLen      = 200
	precoMaxDigits  = 10
	precoMaxDecimal = 2
)

// ProductUseCase casos de uso CRUD de produtos del servidor. El estoque se puede fijar
// al crear o editar; las movimentações lo ajustan después.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto. Un nome repetido es un error con detail, no un error de campo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductInput) (*dto.ProductResponse, error) {
	product := &entity.Product{}
	if err := applyProductInput(product, in, true); err != nil {
		return nil, err
	}
	duplicated := detail(domain.ErrDuplicate, fmt.Sprintf("Produto com nome '%s' já existe.", product.Nome))
	existing, err := uc.repo.GetByNome(ctx, product.Nome)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicated
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, duplicated
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, detail(domain.ErrNotFound, msgNotFound)
	}
	return toProductResponse(product), nil
}

// Update reemplaza los campos recibidos. quantidade_estoque, estoque_min y descricao
// ausentes conservan su valor.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductInput) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, detail(domain.ErrNotFound, msgNotFound)
	}
	if err := applyProductInput(product, in, false); err != nil {
		return nil, err
	}
	duplicated := FieldErrors{"nome": {"produto com este nome já existe."}}
	existing, err := uc.repo.GetByNome(ctx, product.Nome)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, duplicated
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, duplicated
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos ordenados por nome. search filtra por nome o descricao.
func (uc *ProductUseCase) List(ctx context.Context, search string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto sin movimentações registradas.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		product, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return detail(domain.ErrNotFound, msgNotFound)
		}
		used, err := movements.ExistsForProduct(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return detail(domain.ErrInvalidInput, "Não é possível excluir produto com movimentações registradas.")
		}
		return products.Delete(ctx, id)
	})
}

// applyProductInput valida y copia el cuerpo sobre product. create exige nome y preco.
func applyProductInput(product *entity.Product, in dto.ProductInput, create bool) error {
	errs := FieldErrors{}
	switch {
	case in.Nome == nil:
		errs.add("nome", msgRequired)
	case strings.TrimSpace(*in.Nome) == "":
		errs.add("nome", "O nome do produto não pode ser vazio.")
	case utf8.RuneCountInString(*in.Nome) > nomeMaxLen:
		errs.add("nome", fmt.Sprintf("Certifique-se de que este campo não tenha mais de %d caracteres.", nomeMaxLen))
	default:
		product.Nome = *in.Nome
	}
	if in.Preco == nil {
		errs.add("preco", msgRequired)
	} else if msg := validatePreco(*in.Preco); msg != "" {
		errs.add("preco", msg)
	} else {
		product.Preco = *in.Preco
	}
	if in.Descricao != nil {
		product.Descricao = *in.Descricao
	} else if create {
		product.Descricao = ""
	}
	if in.QuantidadeEstoque != nil {
		product.QuantidadeEstoque = *in.QuantidadeEstoque
	}
	if in.EstoqueMin != nil {
		product.EstoqueMin = *in.EstoqueMin
	}
	return errs.orNil()
}

// validatePreco replica DecimalField(max_digits=10, decimal_places=2).
func validatePreco(d decimal.Decimal) string {
	decimals := 0
	if exp := d.Exponent(); exp < 0 {
		decimals = int(-exp)
	}
	if decimals > precoMaxDecimal {
		return fmt.Sprintf("Certifique-se de que não haja mais de %d casas decimais.", precoMaxDecimal)
	}
	whole := len(d.Abs().Truncate(0).String())
	if d.Abs().LessThan(decimal.NewFromInt(1)) {
		whole = 0
	}
	if whole > precoMaxDigits-precoMaxDecimal {
		return fmt.Sprintf("Certifique-se de que não haja mais de %d dígitos antes do ponto decimal.", precoMaxDigits-precoMaxDecimal)
	}
	return ""
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Nome:              p.Nome,
		Descricao:         p.Descricao,
		Preco:             p.Preco,
		QuantidadeEstoque: p.QuantidadeEstoque,
		EstoqueMin:        p.EstoqueMin,
	}
}
