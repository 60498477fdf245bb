package inventory

import (
	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// Modos de cálculo del aviso de estoque bajo.
const (
	// AdvisorySnapshot usa la lista de productos cargada antes del envío. Puede quedar
	// desfasada si hubo otras movimentações entre la carga y el envío.
	AdvisorySnapshot = "snapshot"
	// AdvisoryServer usa alerta_estoque de la respuesta de creación. Las actualizaciones
	// no traen alerta y caen en el cálculo con la lista.
	AdvisoryServer = "server"
)

// SnapshotAdvisory calcula el aviso a partir de la lista conocida: estoque proyectado
// = quantidade_estoque - quantidade; hay aviso si proyectado <= estoque_min.
// Solo aplica a saídas; un producto que no está en la lista no genera aviso.
func SnapshotAdvisory(tipo string, produtoID int64, quantidade int, known []entity.Product) *entity.LowStockAdvisory {
	if tipo != entity.MovementTypeSaida {
		return nil
	}
	p, ok := entity.FindProduct(known, produtoID)
	if !ok {
		return nil
	}
	projected := p.ProjectedAfterExit(quantidade)
	if projected > p.EstoqueMin {
		return nil
	}
	adv := entity.NewSnapshotAdvisory(p, projected)
	return &adv
}

// serverAdvisory traduce el alerta del backend. El backend alerta con estoque < mínimo
// (estricto), medido después de aplicar el movimiento.
func serverAdvisory(tipo string, produtoID int64, created *ports.MovementCreated, known []entity.Product) *entity.LowStockAdvisory {
	if tipo != entity.MovementTypeSaida || created == nil || !created.AlertaEstoque {
		return nil
	}
	adv := entity.LowStockAdvisory{
		ProductID: produtoID,
		Projected: -1,
		Source:    entity.AdvisorySourceServer,
		Message:   created.MensagemAlerta,
	}
	if p, ok := entity.FindProduct(known, produtoID); ok {
		adv.ProductName = p.Nome
		adv.EstoqueMin = p.EstoqueMin
		if adv.Message == "" {
			adv.Message = entity.NewSnapshotAdvisory(p, 0).Message
		}
	}
	return &adv
}
