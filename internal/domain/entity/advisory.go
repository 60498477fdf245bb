package entity

import "fmt"

// Origen del aviso de estoque bajo.
const (
	AdvisorySourceSnapshot = "snapshot"
	AdvisorySourceServer   = "server"
)

// LowStockAdvisory aviso emitido tras una saída que deja el producto en o por debajo del mínimo.
// Projected solo es fiable con Source == snapshot; con server viene del backend.
type LowStockAdvisory struct {
	ProductID   int64
	ProductName string
	EstoqueMin  int
	Projected   int
	Source      string
	Message     string
}

// NewSnapshotAdvisory construye el aviso calculado en el cliente.
func NewSnapshotAdvisory(p Product, projected int) LowStockAdvisory {
	return LowStockAdvisory{
		ProductID:   p.ID,
		ProductName: p.Nome,
		EstoqueMin:  p.EstoqueMin,
		Projected:   projected,
		Source:      AdvisorySourceSnapshot,
		Message:     fmt.Sprintf("Atenção: Estoque do produto \"%s\" abaixo do mínimo (%d).", p.Nome, p.EstoqueMin),
	}
}
