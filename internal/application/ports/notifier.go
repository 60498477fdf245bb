package ports

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// AdvisoryNotifier recibe los avisos de estoque bajo (log, cola de mensajes, ...).
// Un error de notificación no invalida la movimentação ya registrada.
type AdvisoryNotifier interface {
	NotifyLowStock(ctx context.Context, advisory entity.LowStockAdvisory) error
}

// StockReportGenerator genera el relatório de estoque en PDF.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, products []entity.Product, username string, generatedAt time.Time) ([]byte, error)
}
