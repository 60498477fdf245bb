// Package pdf genera el relatório de estoque en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Relatório de Estoque  │  Usuário + Data            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Produto | Preço | Estoque | Mínimo | Situação       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: total de produtos / abaixo do mínimo / valor       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorAlertBg = &props.Color{Red: 253, Green: 226, Blue: 226}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator implementa ports.StockReportGenerator usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// GenerateStockReport genera el PDF con una fila por producto, en el orden recibido.
// Los productos en o por debajo del mínimo se resaltan.
func (g *StockReportGenerator) GenerateStockReport(
	ctx context.Context,
	products []entity.Product,
	username string,
	generatedAt time.Time,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estoque", true).
		WithAuthor(username, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(username, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar relatório: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(username string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("RELATÓRIO DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Usuário: "+nonEmpty(username, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Gerado em: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow cabecera con fondo primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 5, align.Left),
		h("Preço", 2, align.Right),
		h("Estoque", 2, align.Center),
		h("Mínimo", 1, align.Center),
		h("Situação", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(products []entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		situacao, color := "OK", colorGray
		if p.LowStock() {
			situacao, color = "ABAIXO DO MÍNIMO", colorAlert
		}
		r := row.New(7).Add(
			col.New(5).Add(text.New(p.Nome, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatBRL(p.Preco), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprint(p.QuantidadeEstoque), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprint(p.EstoqueMin), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(situacao, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: color})),
		)
		if p.LowStock() {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorAlertBg})
		}
		result = append(result, r)
	}
	return result
}

func summaryRow(products []entity.Product) core.Row {
	low := 0
	for _, p := range products {
		if p.LowStock() {
			low++
		}
	}
	total := inventory.TotalStockValue(products)
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Produtos:", 1),
			label("Abaixo do mínimo:", 7),
			label("Valor em estoque:", 13),
		),
		col.New(3).Add(
			value(fmt.Sprint(len(products)), 1),
			value(fmt.Sprint(low), 7),
			value(formatBRL(total), 13),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatBRL formatea en reales: "R$ 1.234,50".
func formatBRL(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := "R$ " + formatMoney(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
