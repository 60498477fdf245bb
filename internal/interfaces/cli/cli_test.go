package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-cliente/internal/application/usecase"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/sessionstore"
	"github.com/jhoicas/estoque-cliente/internal/interfaces/cli"
	apphttp "github.com/jhoicas/estoque-cliente/internal/interfaces/http"
	"github.com/jhoicas/estoque-cliente/pkg/config"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newConfig levanta el servidor de desarrollo en memoria con el usuario maria y
// devuelve la configuración del cliente apuntando a él, con la sesión en un archivo
// temporal para que persista entre ejecuciones.
func newConfig(t *testing.T) *config.Config {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	authUC := usecase.NewAuthUseCase(memory.NewUserRepository(store), memory.NewTokenBlacklist(store), usecase.JWTConfig{
		Secret: "cli-secret", AccessTTL: time.Minute, RefreshTTL: time.Hour, Issuer: "test",
	})
	_, err := authUC.EnsureUser(context.Background(), "maria", "segredo123")
	require.NoError(t, err)

	app := apphttp.NewApp("test", logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  usecase.NewProductUseCase(memory.NewProductRepository(store), tx),
		MovementUC: usecase.NewMovementUseCase(tx, memory.NewMovementRepository(store)),
		JWTSecret:  "cli-secret",
	})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	return &config.Config{
		App:      config.AppConfig{Env: "test", Name: "estoque", LogLevel: "disabled"},
		API:      config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
		Session:  config.SessionConfig{Backend: config.SessionBackendFile, FilePath: filepath.Join(t.TempDir(), "session.json")},
		Advisory: config.AdvisoryConfig{Mode: config.AdvisoryModeSnapshot},
	}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, cfg *config.Config, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := cli.Execute(context.Background(), args, cli.Options{
		Config: cfg,
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errOut,
	})
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func login(t *testing.T, cfg *config.Config) {
	t.Helper()
	r := run(t, cfg, "", "login", "-u", "maria", "-p", "segredo123")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitOK, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitSessionExpired, cli.ExitCode(fmt.Errorf("listar: %w", domain.ErrSessionExpired)))
	assert.Equal(t, cli.ExitError, cli.ExitCode(domain.ErrUnauthenticated))
	assert.Equal(t, cli.ExitError, cli.ExitCode(errors.New("x")))
}

func TestSinSesion(t *testing.T) {
	cfg := newConfig(t)

	r := run(t, cfg, "", "produtos", "list")

	assert.Equal(t, cli.ExitError, r.code)
	assert.Contains(t, r.stderr, "Nenhuma sessão ativa")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	cfg := newConfig(t)

	r := run(t, cfg, "", "login", "-u", "maria", "-p", "errada")

	assert.Equal(t, cli.ExitError, r.code)
	assert.Contains(t, r.stderr, "Credenciais inválidas.")
}

func TestLogin_PideDatosPorEntrada(t *testing.T) {
	cfg := newConfig(t)

	r := run(t, cfg, "maria\nsegredo123\n", "login")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Bem-vindo, maria!")

	st := run(t, cfg, "", "whoami")
	assert.Contains(t, st.stdout, "Usuário: maria")
}

func TestLogout_BorraLaSesion(t *testing.T) {
	cfg := newConfig(t)
	login(t, cfg)

	r := run(t, cfg, "", "logout")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)

	st := run(t, cfg, "", "status")
	assert.Contains(t, st.stdout, "Nenhuma sessão ativa.")
}

func TestSesionExpirada_Sale2(t *testing.T) {
	cfg := newConfig(t)
	fs, err := sessionstore.NewFileStore(cfg.Session.FilePath)
	require.NoError(t, err)
	require.NoError(t, fs.Set(context.Background(), "access-invalido", "refresh-invalido", "maria"))

	r := run(t, cfg, "", "produtos", "list")

	assert.Equal(t, cli.ExitSessionExpired, r.code)
	assert.Contains(t, r.stderr, "Sessão expirada")
	st := run(t, cfg, "", "status")
	assert.Contains(t, st.stdout, "Nenhuma sessão ativa.", "la sesión se borró")
}

// ──────────────────────────────────────────────────────────────────────────────
// Produtos y movimentações
// ──────────────────────────────────────────────────────────────────────────────

func TestProdutosSave_CamposObligatorios(t *testing.T) {
	cfg := newConfig(t)
	login(t, cfg)

	r := run(t, cfg, "", "produtos", "save", "--nome", "Caneta", "--minimo", "1")

	assert.Equal(t, cli.ExitError, r.code)
	assert.Contains(t, r.stderr, "campos obrigatórios")
}

func TestMovimentacoesSave_FormularioIncompletoSinPeticiones(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	cfg := newConfig(t)
	cfg.API.BaseURL = srv.URL
	fs, err := sessionstore.NewFileStore(cfg.Session.FilePath)
	require.NoError(t, err)
	require.NoError(t, fs.Set(context.Background(), "access", "refresh", "maria"))

	r := run(t, cfg, "", "movimentacoes", "save", "--quantidade", "5")

	assert.Equal(t, cli.ExitError, r.code)
	assert.Contains(t, r.stderr, "campos obrigatórios")
	assert.Zero(t, hits.Load(), "ninguna petición con el formulario incompleto")
}

func TestMovimentacoesSave_FalloDeLaListaNoImpideElEnvio(t *testing.T) {
	cfg := newConfig(t)
	login(t, cfg)
	r := run(t, cfg, "", "produtos", "save", "--nome", "Caneta", "--preco", "1", "--estoque", "3", "--minimo", "1")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)

	// la lista de produtos falla; el resto se reenvía al servidor de desarrollo
	backend := cfg.API.BaseURL
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet && req.URL.Path == "/api/produtos/" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		proxied, err := http.NewRequestWithContext(req.Context(), req.Method, backend+req.URL.RequestURI(), req.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		proxied.Header = req.Header.Clone()
		resp, err := http.DefaultClient.Do(proxied)
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()
		w.Header().Set("Content-Type", resp.Header.Get("Content-Type"))
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)
	}))
	defer srv.Close()
	cfg.API.BaseURL = srv.URL

	r = run(t, cfg, "", "movimentacoes", "save", "--produto", "1", "--tipo", "entrada", "--quantidade", "2")

	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Movimentação registrada.")
}

func TestFlujoCompleto(t *testing.T) {
	cfg := newConfig(t)
	login(t, cfg)

	r := run(t, cfg, "", "produtos", "save", "--nome", "Caneta", "--preco", "2,50", "--estoque", "10", "--minimo", "6")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, `Produto "Caneta" cadastrado`)

	r = run(t, cfg, "", "produtos", "save", "--nome", "Caneta", "--preco", "1", "--minimo", "1")
	assert.Equal(t, cli.ExitError, r.code)
	assert.Contains(t, r.stderr, "Produto com nome 'Caneta' já existe.")

	r = run(t, cfg, "", "movimentacoes", "save", "--produto", "1", "--tipo", "saida", "--quantidade", "5")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Movimentação registrada.")
	assert.Contains(t, r.stdout, `Atenção: Estoque do produto "Caneta" abaixo do mínimo (6).`)
	assert.Contains(t, r.stdout, "Saída")

	r = run(t, cfg, "", "movimentacoes", "save", "--produto", "1", "--tipo", "saida", "--quantidade", "50")
	assert.Equal(t, cli.ExitError, r.code)
	assert.Contains(t, r.stderr, "Quantidade de saída maior que o estoque disponível.")

	r = run(t, cfg, "", "produtos", "list")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "R$ 2,50")
	assert.Contains(t, r.stdout, "baixo")

	r = run(t, cfg, "", "home")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Olá, maria!")
	assert.Contains(t, r.stdout, "Valor em estoque: R$ 12,50")
	assert.Contains(t, r.stdout, "Estoque baixo:")

	r = run(t, cfg, "", "produtos", "delete", "1")
	assert.Equal(t, cli.ExitError, r.code)
	assert.Contains(t, r.stderr, "Não é possível excluir produto com movimentações registradas.")

	r = run(t, cfg, "", "movimentacoes", "delete", "1")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	r = run(t, cfg, "", "produtos", "delete", "1")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
}

func TestProdutosBusca(t *testing.T) {
	cfg := newConfig(t)
	login(t, cfg)
	run(t, cfg, "", "produtos", "save", "--nome", "Caneta", "--preco", "1", "--minimo", "1")
	run(t, cfg, "", "produtos", "save", "--nome", "Borracha", "--preco", "1", "--minimo", "1")

	r := run(t, cfg, "", "produtos", "search", "bor")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Borracha")
	assert.NotContains(t, r.stdout, "Caneta")

	r = run(t, cfg, "", "produtos", "search", "xyz")
	assert.Contains(t, r.stdout, "Nenhum produto encontrado.")
}

func TestRelatorio(t *testing.T) {
	cfg := newConfig(t)
	login(t, cfg)
	run(t, cfg, "", "produtos", "save", "--nome", "Caneta", "--preco", "2,50", "--estoque", "3", "--minimo", "6")
	out := filepath.Join(t.TempDir(), "estoque.pdf")

	r := run(t, cfg, "", "produtos", "relatorio", "-o", out)
	require.Equal(t, cli.ExitOK, r.code, r.stderr)

	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestProdutosImportar(t *testing.T) {
	cfg := newConfig(t)
	login(t, cfg)
	run(t, cfg, "", "produtos", "save", "--nome", "Caneta", "--preco", "1", "--minimo", "1")

	csv := filepath.Join(t.TempDir(), "catalogo.csv")
	content := "nome;preco;quantidade_estoque;estoque_min\nCaneta;2,50;10;6\nBorracha;1,20;4;2\nRégua;;1;1\n"
	require.NoError(t, os.WriteFile(csv, []byte(content), 0o644))

	r := run(t, cfg, "", "produtos", "importar", csv, "--separador", ";")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "1 cadastrados, 0 atualizados, 1 ignorados")
	assert.Contains(t, r.stdout, `linha 2: produto "Caneta" já existe`)
	assert.Contains(t, r.stdout, "linha 4:")

	r = run(t, cfg, "", "produtos", "importar", csv, "--separador", ";", "--atualizar")
	require.Equal(t, cli.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "0 cadastrados, 2 atualizados")

	r = run(t, cfg, "", "produtos", "search", "caneta")
	assert.Contains(t, r.stdout, "R$ 2,50")
}
