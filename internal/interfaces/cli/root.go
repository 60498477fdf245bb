// Package cli implementa el comando estoque: sesión, produtos y movimentações contra el
// backend REST de inventario.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/pkg/config"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

// Códigos de salida.
const (
	ExitOK             = 0
	ExitError          = 1
	ExitSessionExpired = 2
)

// Options entradas y salidas del comando. Config nil = config.Load().
type Options struct {
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Execute ejecuta la línea de comandos y devuelve el código de salida.
func Execute(ctx context.Context, args []string, opts Options) int {
	opts.defaults()
	var a *app
	root := newRootCommand(&opts, &a)
	root.SetArgs(args)
	root.SetIn(opts.Stdin)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	err := root.ExecuteContext(ctx)
	if a != nil {
		a.close()
	}
	if err != nil {
		fmt.Fprintln(opts.Stderr, errorMessage(err))
	}
	return ExitCode(err)
}

// ExitCode 2 si la sesión expiró (hay que volver a entrar), 1 para cualquier otro error.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrSessionExpired):
		return ExitSessionExpired
	default:
		return ExitError
	}
}

func newRootCommand(opts *Options, a **app) *cobra.Command {
	root := &cobra.Command{
		Use:           "estoque",
		Short:         "Cliente do sistema de estoque",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.Config
			if cfg == nil {
				var err error
				cfg, err = config.Load()
				if err != nil {
					return err
				}
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: opts.Stderr})
			built, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			*a = built
			return nil
		},
	}
	deps := func() *app { return *a }
	root.AddCommand(
		newLoginCommand(deps),
		newLogoutCommand(deps),
		newStatusCommand(deps),
		newHomeCommand(deps),
		newProductsCommand(deps),
		newMovementsCommand(deps),
	)
	return root
}

// errorMessage texto para el usuario según el tipo de error.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return "Sessão expirada, faça login novamente: estoque login"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Nenhuma sessão ativa. Faça login: estoque login"
	case errors.Is(err, domain.ErrNetwork):
		return "Sem resposta do servidor. Verifique a conexão."
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return "Erro: " + domain.Detail(err)
	}
	return "Erro: " + err.Error()
}
