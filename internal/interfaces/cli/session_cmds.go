package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCommand(deps func() *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia a sessão e guarda os tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				username = prompt(cmd.OutOrStdout(), in, "Usuário: ")
			}
			if password == "" {
				password = prompt(cmd.OutOrStdout(), in, "Senha: ")
			}
			if err := deps().sessions.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Login realizado. Bem-vindo, %s!\n", strings.TrimSpace(username))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "usuario", "u", "", "nome de usuário")
	cmd.Flags().StringVarP(&password, "senha", "p", "", "senha (se omitida, é lida da entrada)")
	return cmd
}

func prompt(out io.Writer, in *bufio.Reader, label string) string {
	fmt.Fprint(out, label)
	line, _ := in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func newLogoutCommand(deps func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoga o refresh token e apaga a sessão local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := deps().sessions.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
			return err
		},
	}
}

func newStatusCommand(deps func() *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"whoami"},
		Short:   "Mostra o usuário da sessão e a validade dos tokens",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := deps().sessions.Status(cmd.Context())
			if err != nil {
				return err
			}
			renderStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func newHomeCommand(deps func() *app) *cobra.Command {
	return &cobra.Command{
		Use:     "home",
		Aliases: []string{"inicio"},
		Short:   "Resumo: produtos, movimentações e estoque baixo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ov, err := deps().overview.Load(cmd.Context())
			if err != nil {
				return err
			}
			renderOverview(cmd.OutOrStdout(), ov)
			return nil
		},
	}
}
