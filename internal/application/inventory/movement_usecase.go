package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

// SubmitResult resultado de un envío correcto.
type SubmitResult struct {
	Movement entity.Movement
	Created  bool
	// Movements lista recargada después del envío. Si la recarga falla queda nil y
	// ReloadErr explica por qué; el envío en sí fue correcto.
	Movements []entity.Movement
	ReloadErr error
	// Form formulario limpio para la siguiente movimentação.
	Form     MovementForm
	Advisory *entity.LowStockAdvisory
}

// MovementUseCase flujo de movimentações del cliente: validar, enviar, recargar la
// lista y avisar de estoque bajo.
type MovementUseCase struct {
	gateway   ports.MovementGateway
	notifiers []ports.AdvisoryNotifier
	mode      string
	log       *logger.Logger
}

// NewMovementUseCase construye el caso de uso. mode es AdvisorySnapshot o AdvisoryServer
// (vacío = AdvisorySnapshot).
func NewMovementUseCase(gateway ports.MovementGateway, mode string, log *logger.Logger, notifiers ...ports.AdvisoryNotifier) *MovementUseCase {
	if mode == "" {
		mode = AdvisorySnapshot
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MovementUseCase{gateway: gateway, notifiers: notifiers, mode: mode, log: log.Named("movimentacoes")}
}

// List movimentações en el orden del servidor.
func (uc *MovementUseCase) List(ctx context.Context) ([]entity.Movement, error) {
	return uc.gateway.List(ctx)
}

// Submit valida el formulario y crea (sin ID) o actualiza (con ID) la movimentação.
// knownProducts es la lista de productos que el usuario tenía cargada; no se vuelve a pedir.
//
// Formulario incompleto: domain.ErrValidation sin ninguna petición. Fallo del backend:
// domain.ErrSubmissionFailed con el detalle. En cualquier error el formulario del
// llamador sigue intacto para reintentar.
func (uc *MovementUseCase) Submit(ctx context.Context, form MovementForm, knownProducts []entity.Product) (*SubmitResult, error) {
	in, err := form.parse()
	if err != nil {
		return nil, err
	}

	res := &SubmitResult{Form: EmptyMovementForm()}
	var created *ports.MovementCreated
	if in.id == 0 {
		created, err = uc.gateway.Create(ctx, in.req)
		if err != nil {
			return nil, submissionError("salvar movimentação", err)
		}
		res.Movement = created.Movement
		res.Created = true
	} else {
		updated, err := uc.gateway.Update(ctx, in.id, in.req)
		if err != nil {
			return nil, submissionError("salvar movimentação", err)
		}
		res.Movement = *updated
	}

	res.Movements, res.ReloadErr = uc.gateway.List(ctx)
	if res.ReloadErr != nil {
		uc.log.Warn().Err(res.ReloadErr).Msg("movimentação salva, pero no se pudo recargar la lista")
		res.ReloadErr = fmt.Errorf("recarregar movimentações: %w", res.ReloadErr)
	}

	res.Advisory = uc.advisory(in, created, knownProducts)
	if res.Advisory != nil {
		uc.notify(ctx, *res.Advisory)
	}
	return res, nil
}

func (uc *MovementUseCase) advisory(in parsedMovement, created *ports.MovementCreated, known []entity.Product) *entity.LowStockAdvisory {
	if uc.mode == AdvisoryServer && created != nil {
		return serverAdvisory(in.req.Tipo, in.req.Produto, created, known)
	}
	return SnapshotAdvisory(in.req.Tipo, in.req.Produto, in.req.Quantidade, known)
}

// notify entrega el aviso a cada notificador. Un fallo se registra y no se propaga.
func (uc *MovementUseCase) notify(ctx context.Context, adv entity.LowStockAdvisory) {
	for _, n := range uc.notifiers {
		if err := n.NotifyLowStock(ctx, adv); err != nil {
			uc.log.Error().Err(err).Int64("produto", adv.ProductID).Msg("no se pudo publicar el aviso de estoque")
		}
	}
}

// Delete elimina una movimentação.
func (uc *MovementUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.gateway.Delete(ctx, id); err != nil {
		return submissionError("excluir movimentação", err)
	}
	return nil
}
