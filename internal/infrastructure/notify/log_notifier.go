package notify

import (
	"context"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

// LogNotifier registra cada aviso de estoque bajo como WARN.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador sobre el logger de la aplicación.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.Named("alertas")}
}

func (n *LogNotifier) NotifyLowStock(_ context.Context, adv entity.LowStockAdvisory) error {
	ev := n.log.Warn().
		Int64("produto_id", adv.ProductID).
		Str("produto", adv.ProductName).
		Int("estoque_min", adv.EstoqueMin).
		Str("origem", adv.Source)
	if adv.Source == entity.AdvisorySourceSnapshot {
		ev = ev.Int("estoque_projetado", adv.Projected)
	}
	ev.Msg(adv.Message)
	return nil
}
