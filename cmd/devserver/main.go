// Command devserver levanta el backend REST de inventario (login JWT, produtos y
// movimentações) contra el que trabaja el cliente estoque. Sin base configurada usa
// almacenamiento en memoria.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-cliente/internal/application/usecase"
	"github.com/jhoicas/estoque-cliente/internal/domain/repository"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/estoque-cliente/internal/interfaces/http"
	"github.com/jhoicas/estoque-cliente/pkg/config"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

type repos struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	users     repository.UserRepository
	blacklist repository.TokenBlacklist
	tx        usecase.TxRunner
	backend   string
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	ctx := context.Background()
	r, err := openRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer r.close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", r.backend).
		Msg("iniciando servidor de desarrollo")

	authUC := usecase.NewAuthUseCase(r.users, r.blacklist, usecase.JWTConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  time.Duration(cfg.JWT.AccessMinutes) * time.Minute,
		RefreshTTL: time.Duration(cfg.JWT.RefreshMinutes) * time.Minute,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Seed.Username != "" {
		if _, err := authUC.EnsureUser(ctx, cfg.Seed.Username, cfg.Seed.Password); err != nil {
			log.Fatal().Err(err).Msg("crear usuario inicial")
		}
		log.Info().Str("username", cfg.Seed.Username).Msg("usuario inicial disponible")
	}

	app := httpRouter.NewApp(cfg.App.Name, log)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": r.backend})
	})
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      usecase.NewProductUseCase(r.products, r.tx),
		MovementUC:     usecase.NewMovementUseCase(r.tx, r.movements),
		JWTSecret:      cfg.JWT.Secret,
		LoginPerMinute: cfg.HTTP.LoginPerMinute,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servidor detenido")
}

// openRepos elige PostgreSQL si hay base configurada (y aplica el esquema) o memoria.
func openRepos(ctx context.Context, cfg *config.Config) (*repos, error) {
	if !cfg.DB.Enabled() {
		store := memory.NewStore()
		return &repos{
			products:  memory.NewProductRepository(store),
			movements: memory.NewMovementRepository(store),
			users:     memory.NewUserRepository(store),
			blacklist: memory.NewTokenBlacklist(store),
			tx:        memory.NewTxRunner(store),
			backend:   "memory",
			close:     func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &repos{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		users:     postgres.NewUserRepository(pool),
		blacklist: postgres.NewTokenBlacklist(pool),
		tx:        postgres.NewTxRunner(pool),
		backend:   "postgres",
		close:     pool.Close,
	}, nil
}
