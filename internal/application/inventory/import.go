package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/estoque-cliente/internal/domain"
)

// ImportResult resumen de una importación de catálogo.
type ImportResult struct {
	Created int
	Updated int
	Skipped int
	// Errors una línea por fila rechazada, con el número de línea del archivo.
	Errors []string
}

// Import guarda las filas de un catálogo una a una. Un nome ya cadastrado se omite, o se
// actualiza si update es true. Los fallos de fila se acumulan; sesión expirada, red y
// cancelación interrumpen la importación.
func (uc *ProductUseCase) Import(ctx context.Context, forms []ProductForm, update bool) (*ImportResult, error) {
	existing, err := uc.gateway.List(ctx)
	if err != nil {
		return nil, err
	}
	byNome := make(map[string]int64, len(existing))
	for _, p := range existing {
		byNome[strings.ToLower(p.Nome)] = p.ID
	}

	res := &ImportResult{}
	for i, form := range forms {
		line := i + 2 // la línea 1 es la cabecera
		form.ID = ""
		key := strings.ToLower(strings.TrimSpace(form.Nome))
		if id, ok := byNome[key]; ok && key != "" {
			if !update {
				res.Skipped++
				res.Errors = append(res.Errors, fmt.Sprintf("linha %d: produto %q já existe", line, strings.TrimSpace(form.Nome)))
				continue
			}
			form.ID = strconv.FormatInt(id, 10)
		}
		p, err := uc.Save(ctx, form)
		if err != nil {
			if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrSubmissionFailed) {
				return res, err
			}
			res.Errors = append(res.Errors, fmt.Sprintf("linha %d: %s", line, domain.Detail(err)))
			continue
		}
		if form.ID == "" {
			res.Created++
			byNome[strings.ToLower(p.Nome)] = p.ID
		} else {
			res.Updated++
		}
	}
	return res, nil
}
