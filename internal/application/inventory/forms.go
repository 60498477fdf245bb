package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-cliente/internal/application/dto"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// MovementForm datos de una movimentação tal como los escribe el usuario.
// ID vacío = crear; con ID = actualizar.
type MovementForm struct {
	ID         string
	Produto    string
	Tipo       string
	Quantidade string
}

// EmptyMovementForm formulario limpio (tipo entrada por defecto).
func EmptyMovementForm() MovementForm {
	return MovementForm{Tipo: entity.MovementTypeEntrada}
}

// FormFromMovement carga una movimentação existente en el formulario para editarla.
func FormFromMovement(m entity.Movement) MovementForm {
	return MovementForm{
		ID:         strconv.FormatInt(m.ID, 10),
		Produto:    strconv.FormatInt(m.ProdutoID, 10),
		Tipo:       m.Tipo,
		Quantidade: strconv.Itoa(m.Quantidade),
	}
}

// parsedMovement formulario validado.
type parsedMovement struct {
	id  int64 // 0 = crear
	req dto.MovementRequest
}

// parse exige produto y quantidade. La cantidad se convierte a entero sin comprobar
// signo ni límite: cero y negativos se envían al servidor tal cual.
func (f MovementForm) parse() (parsedMovement, error) {
	produto := strings.TrimSpace(f.Produto)
	quantidade := strings.TrimSpace(f.Quantidade)
	if produto == "" || quantidade == "" {
		return parsedMovement{}, fmt.Errorf("%w: produto e quantidade", domain.ErrValidation)
	}
	produtoID, err := strconv.ParseInt(produto, 10, 64)
	if err != nil {
		return parsedMovement{}, fmt.Errorf("%w: produto inválido %q", domain.ErrValidation, produto)
	}
	qty, ok := parseWhole(quantidade)
	if !ok {
		return parsedMovement{}, fmt.Errorf("%w: quantidade deve ser um número inteiro", domain.ErrValidation)
	}
	tipo := strings.TrimSpace(f.Tipo)
	if tipo == "" {
		tipo = entity.MovementTypeEntrada
	}
	if !entity.ValidMovementType(tipo) {
		return parsedMovement{}, fmt.Errorf("%w: tipo deve ser entrada ou saida", domain.ErrValidation)
	}
	var id int64
	if s := strings.TrimSpace(f.ID); s != "" {
		id, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return parsedMovement{}, fmt.Errorf("%w: id inválido %q", domain.ErrValidation, s)
		}
	}
	return parsedMovement{
		id:  id,
		req: dto.MovementRequest{Produto: produtoID, Tipo: tipo, Quantidade: qty},
	}, nil
}

// ProductForm datos de un producto tal como los escribe el usuario.
type ProductForm struct {
	ID                string
	Nome              string
	Descricao         string
	Preco             string
	QuantidadeEstoque string
	EstoqueMin        string
}

// FormFromProduct carga un producto existente para editarlo.
func FormFromProduct(p entity.Product) ProductForm {
	return ProductForm{
		ID:                strconv.FormatInt(p.ID, 10),
		Nome:              p.Nome,
		Descricao:         p.Descricao,
		Preco:             p.Preco.StringFixed(2),
		QuantidadeEstoque: strconv.Itoa(p.QuantidadeEstoque),
		EstoqueMin:        strconv.Itoa(p.EstoqueMin),
	}
}

// Validate comprueba el formulario sin enviarlo: domain.ErrValidation si está incompleto
// o mal formado.
func (f MovementForm) Validate() error {
	_, err := f.parse()
	return err
}

// parseWhole convierte un número escrito por el usuario ("10", "1e1", "4.0") a entero.
// Valores con parte fraccionaria o fuera de rango no son válidos.
func parseWhole(s string) (int, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() || d.Abs().GreaterThan(maxWhole) {
		return 0, false
	}
	return int(d.IntPart()), true
}

var maxWhole = decimal.NewFromInt(math.MaxInt32)

type parsedProduct struct {
	id  int64
	req dto.ProductRequest
}

// parse exige nome, preco y estoque_min. quantidade_estoque vacía vale 0.
// Acepta coma como separador decimal en el precio ("2,50").
func (f ProductForm) parse() (parsedProduct, error) {
	nome := strings.TrimSpace(f.Nome)
	precoStr := strings.TrimSpace(f.Preco)
	minStr := strings.TrimSpace(f.EstoqueMin)
	if nome == "" || precoStr == "" || minStr == "" {
		return parsedProduct{}, fmt.Errorf("%w: nome, preço e estoque mínimo", domain.ErrValidation)
	}
	preco, err := decimal.NewFromString(strings.Replace(precoStr, ",", ".", 1))
	if err != nil {
		return parsedProduct{}, fmt.Errorf("%w: preço inválido %q", domain.ErrValidation, precoStr)
	}
	estoqueMin, ok := parseWhole(minStr)
	if !ok {
		return parsedProduct{}, fmt.Errorf("%w: estoque mínimo deve ser inteiro", domain.ErrValidation)
	}
	qtd := 0
	if s := strings.TrimSpace(f.QuantidadeEstoque); s != "" {
		if qtd, ok = parseWhole(s); !ok {
			return parsedProduct{}, fmt.Errorf("%w: quantidade em estoque deve ser inteira", domain.ErrValidation)
		}
	}
	var id int64
	if s := strings.TrimSpace(f.ID); s != "" {
		id, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return parsedProduct{}, fmt.Errorf("%w: id inválido %q", domain.ErrValidation, s)
		}
	}
	return parsedProduct{
		id: id,
		req: dto.ProductRequest{
			Nome:              nome,
			Descricao:         f.Descricao,
			Preco:             preco,
			QuantidadeEstoque: qtd,
			EstoqueMin:        estoqueMin,
		},
	}, nil
}
