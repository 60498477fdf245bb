package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-cliente/internal/application/inventory"
	"github.com/jhoicas/estoque-cliente/internal/domain"
)

func newMovementsCommand(deps func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "movimentacoes",
		Aliases: []string{"movimentacao", "m"},
		Short:   "Entradas e saídas de estoque",
	}
	cmd.AddCommand(
		newMovementListCommand(deps),
		newMovementSaveCommand(deps),
		newMovementDeleteCommand(deps),
	)
	return cmd
}

func newMovementListCommand(deps func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista as movimentações, da mais recente à mais antiga",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := deps()
			list, err := a.movementUseCase(cmd.Context(), false).List(cmd.Context())
			if err != nil {
				return err
			}
			renderMovements(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func newMovementSaveCommand(deps func() *app) *cobra.Command {
	form := inventory.EmptyMovementForm()
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Registra uma movimentação, ou a atualiza com --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := deps()
			ctx := cmd.Context()
			if err := form.Validate(); err != nil {
				return err
			}
			// lista de produtos vista antes do envio, como na tela de movimentações; sin
			// ella no hay aviso por lista previa pero la movimentação se envía igual
			known, err := a.products.ListSorted(ctx)
			switch {
			case errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrUnauthenticated):
				return err
			case err != nil:
				a.log.Warn().Err(err).Msg("no se pudo cargar la lista de produtos")
			}
			res, err := a.movementUseCase(ctx, true).Submit(ctx, form, known)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Created {
				fmt.Fprintln(out, "Movimentação registrada.")
			} else {
				fmt.Fprintln(out, "Movimentação atualizada.")
			}
			if res.Advisory != nil {
				fmt.Fprintln(out, res.Advisory.Message)
			}
			if res.ReloadErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Não foi possível recarregar as movimentações: "+errorMessage(res.ReloadErr))
				return nil
			}
			renderMovements(out, res.Movements)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.ID, "id", "", "id da movimentação a atualizar")
	f.StringVar(&form.Produto, "produto", "", "id do produto (obrigatório)")
	f.StringVar(&form.Tipo, "tipo", form.Tipo, "entrada ou saida")
	f.StringVar(&form.Quantidade, "quantidade", "", "quantidade (obrigatório)")
	return cmd
}

func newMovementDeleteCommand(deps func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Exclui uma movimentação",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := deps().movementUseCase(cmd.Context(), false).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Movimentação %d excluída.\n", id)
			return nil
		},
	}
}

func tipoLabel(tipo string) string {
	switch strings.ToLower(tipo) {
	case "entrada":
		return "Entrada"
	case "saida":
		return "Saída"
	default:
		return tipo
	}
}
