package cli

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-cliente/internal/application/auth"
	"github.com/jhoicas/estoque-cliente/internal/application/inventory"
	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/apiclient"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/notify"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-cliente/internal/infrastructure/sessionstore"
	"github.com/jhoicas/estoque-cliente/pkg/config"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

// app dependencias de los comandos. Se construye una vez por ejecución.
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	store      ports.SessionStore
	sessions   *auth.SessionUseCase
	products   *inventory.ProductUseCase
	overview   *inventory.OverviewUseCase
	movementGW ports.MovementGateway
	closers    []func() error
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	store, closeStore, err := sessionstore.Open(ctx, cfg.Session)
	if err != nil {
		return nil, err
	}
	api := apiclient.NewClient(apiclient.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
		UserAgent: cfg.API.UserAgent,
		Logger:    log,
	}, store)
	productGW := apiclient.NewProductClient(api)
	movementGW := apiclient.NewMovementClient(api)
	return &app{
		cfg:        cfg,
		log:        log,
		store:      store,
		sessions:   auth.NewSessionUseCase(apiclient.NewAuthClient(api), store, log),
		products:   inventory.NewProductUseCase(productGW, pdf.NewStockReportGenerator()),
		overview:   inventory.NewOverviewUseCase(store, productGW, movementGW),
		movementGW: movementGW,
		closers:    []func() error{closeStore},
	}, nil
}

// movementUseCase arma el flujo de movimentações. Con withNotifiers se añaden los notificadores
// de estoque bajo; el publicador AMQP solo se conecta entonces y, si el broker no
// responde, los avisos quedan en el log.
func (a *app) movementUseCase(ctx context.Context, withNotifiers bool) *inventory.MovementUseCase {
	if !withNotifiers {
		return inventory.NewMovementUseCase(a.movementGW, a.cfg.Advisory.Mode, a.log)
	}
	notifiers := []ports.AdvisoryNotifier{notify.NewLogNotifier(a.log)}
	if url := a.cfg.Advisory.AMQPURL; url != "" {
		if pub, err := a.amqpPublisher(ctx, url); err != nil {
			a.log.Warn().Err(err).Msg("avisos sin publicar en AMQP")
		} else {
			notifiers = append(notifiers, pub)
		}
	}
	return inventory.NewMovementUseCase(a.movementGW, a.cfg.Advisory.Mode, a.log, notifiers...)
}

func (a *app) amqpPublisher(ctx context.Context, url string) (*notify.AMQPPublisher, error) {
	ch, closeFn, err := notify.DialAMQP(url)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeFn)
	username, err := a.store.Username(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	return notify.NewAMQPPublisher(ch, a.cfg.Advisory.AMQPQueue, username)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Debug().Err(err).Msg("cerrar recurso")
		}
	}
}
