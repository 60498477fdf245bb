package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-cliente/internal/application/inventory"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/catalog"
)

func newProductsCommand(deps func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "produtos",
		Aliases: []string{"produto", "p"},
		Short:   "Cadastro de produtos",
	}
	cmd.AddCommand(
		newProductListCommand(deps),
		newProductSearchCommand(deps),
		newProductSaveCommand(deps),
		newProductDeleteCommand(deps),
		newProductReportCommand(deps),
		newProductImportCommand(deps),
	)
	return cmd
}

func newProductListCommand(deps func() *app) *cobra.Command {
	var sorted bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista os produtos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			load := deps().products.List
			if sorted {
				load = deps().products.ListSorted
			}
			list, err := load(cmd.Context())
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sorted, "ordenar", false, "ordena por nome (pt-BR)")
	return cmd
}

func newProductSearchCommand(deps func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [termo]",
		Short: "Busca produtos por nome ou descrição (sem termo lista todos)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			list, err := deps().products.Search(cmd.Context(), term)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func newProductSaveCommand(deps func() *app) *cobra.Command {
	var form inventory.ProductForm
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Cria um produto, ou o atualiza com --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := deps().products.Save(cmd.Context(), form)
			if err != nil {
				return err
			}
			verb := "cadastrado"
			if strings.TrimSpace(form.ID) != "" {
				verb = "atualizado"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Produto %q %s (id %d).\n", p.Nome, verb, p.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.ID, "id", "", "id do produto a atualizar")
	f.StringVar(&form.Nome, "nome", "", "nome (obrigatório)")
	f.StringVar(&form.Descricao, "descricao", "", "descrição")
	f.StringVar(&form.Preco, "preco", "", "preço, aceita vírgula (obrigatório)")
	f.StringVar(&form.QuantidadeEstoque, "estoque", "", "quantidade em estoque (vazio = 0)")
	f.StringVar(&form.EstoqueMin, "minimo", "", "estoque mínimo (obrigatório)")
	return cmd
}

func newProductDeleteCommand(deps func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Exclui um produto sem movimentações",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := deps().products.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Produto %d excluído.\n", id)
			return nil
		},
	}
}

func newProductReportCommand(deps func() *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "relatorio",
		Short: "Gera o relatório de estoque em PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := deps()
			username, err := a.sessions.RequireSession(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := a.products.Report(cmd.Context(), username)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, doc, 0o644); err != nil {
				return fmt.Errorf("gravar %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Relatório gravado em %s.\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "estoque.pdf", "arquivo de saída")
	return cmd
}

func newProductImportCommand(deps func() *app) *cobra.Command {
	var (
		latin1    bool
		atualizar bool
		separador string
	)
	cmd := &cobra.Command{
		Use:   "importar <arquivo.csv>",
		Short: "Importa produtos de um CSV (nome, descricao, preco, quantidade_estoque, estoque_min)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := catalog.Options{Latin1: latin1}
			if separador != "" {
				r := []rune(separador)
				if len(r) != 1 {
					return fmt.Errorf("separador inválido %q", separador)
				}
				opts.Comma = r[0]
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			forms, err := catalog.ReadProducts(f, opts)
			if err != nil {
				return err
			}
			res, err := deps().products.Import(cmd.Context(), forms, atualizar)
			if res != nil {
				renderImport(cmd.OutOrStdout(), res)
			}
			return err
		},
	}
	f := cmd.Flags()
	f.BoolVar(&latin1, "latin1", false, "arquivo em ISO-8859-1")
	f.BoolVar(&atualizar, "atualizar", false, "atualiza produtos com o mesmo nome em vez de ignorá-los")
	f.StringVar(&separador, "separador", "", "separador de campos (padrão ',')")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return id, nil
}
