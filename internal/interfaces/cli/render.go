package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-cliente/internal/application/auth"
	"github.com/jhoicas/estoque-cliente/internal/application/inventory"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	stock "github.com/jhoicas/estoque-cliente/internal/domain/inventory"
)

const dateLayout = "02/01/2006 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderProducts(w io.Writer, products []entity.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "Nenhum produto encontrado.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNOME\tPREÇO\tESTOQUE\tMÍNIMO\t")
	for _, p := range products {
		flag := ""
		if p.LowStock() {
			flag = "baixo"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n", p.ID, p.Nome, formatPreco(p.Preco), p.QuantidadeEstoque, p.EstoqueMin, flag)
	}
	tw.Flush()
}

func renderMovements(w io.Writer, movements []entity.Movement) {
	if len(movements) == 0 {
		fmt.Fprintln(w, "Nenhuma movimentação registrada.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPRODUTO\tTIPO\tQUANTIDADE\tDATA\t")
	for _, m := range movements {
		produto := m.ProdutoNome
		if produto == "" {
			produto = fmt.Sprintf("#%d", m.ProdutoID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t\n", m.ID, produto, tipoLabel(m.Tipo), m.Quantidade, formatDate(m.DataMovimentacao))
	}
	tw.Flush()
}

func renderStatus(w io.Writer, st *auth.Status) {
	if !st.LoggedIn {
		fmt.Fprintln(w, "Nenhuma sessão ativa.")
		return
	}
	fmt.Fprintf(w, "Usuário: %s\n", st.Username)
	fmt.Fprintf(w, "Access token expira em: %s\n", formatDate(st.AccessExpiresAt))
	fmt.Fprintf(w, "Refresh token expira em: %s\n", formatDate(st.RefreshExpiresAt))
}

func renderOverview(w io.Writer, ov *inventory.Overview) {
	fmt.Fprintf(w, "Olá, %s!\n", ov.Username)
	fmt.Fprintf(w, "Produtos: %d  Movimentações: %d\n", len(ov.Products), len(ov.Movements))
	fmt.Fprintf(w, "Valor em estoque: %s\n", formatPreco(stock.TotalStockValue(ov.Products)))
	if len(ov.LowStock) == 0 {
		fmt.Fprintln(w, "Nenhum produto com estoque baixo.")
		return
	}
	fmt.Fprintln(w, "\nEstoque baixo:")
	renderProducts(w, ov.LowStock)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

// formatPreco "R$ 2,50".
func formatPreco(d decimal.Decimal) string {
	return "R$ " + strings.Replace(d.StringFixed(2), ".", ",", 1)
}

func renderImport(w io.Writer, res *inventory.ImportResult) {
	fmt.Fprintf(w, "Importação concluída: %d cadastrados, %d atualizados, %d ignorados.\n", res.Created, res.Updated, res.Skipped)
	for _, e := range res.Errors {
		fmt.Fprintln(w, "  "+e)
	}
}
