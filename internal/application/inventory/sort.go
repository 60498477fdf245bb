package inventory

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

// SortByNome ordena en el sitio por nome con la colación pt-BR (acentos y mayúsculas
// no alteran el orden alfabético: "Álcool" va antes de "Borracha").
func SortByNome(products []entity.Product) {
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(products, func(i, j int) bool {
		return c.CompareString(products[i].Nome, products[j].Nome) < 0
	})
}

// LowStock filtra los productos en o por debajo del mínimo.
func LowStock(products []entity.Product) []entity.Product {
	var out []entity.Product
	for _, p := range products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out
}
