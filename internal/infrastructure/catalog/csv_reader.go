// Package catalog lee catálogos de produtos en CSV para importarlos con el cliente.
//
// Columnas (cabecera obligatoria, sin distinguir mayúsculas y en cualquier orden):
// nome, descricao, preco, quantidade_estoque, estoque_min. Solo nome es obligatoria
// en la cabecera; la validación de cada fila la hace el formulario de produtos.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/estoque-cliente/internal/application/inventory"
)

// Options formato del archivo.
type Options struct {
	// Latin1 decodifica ISO-8859-1 (exportaciones de planillas antiguas).
	Latin1 bool
	// Comma separador de campos; 0 = ','. Las planillas en pt-BR suelen usar ';'.
	Comma rune
}

var columns = []string{"nome", "descricao", "preco", "quantidade_estoque", "estoque_min"}

// ReadProducts devuelve una fila del formulario de produtos por línea de datos.
func ReadProducts(r io.Reader, opts Options) ([]inventory.ProductForm, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("catalog: arquivo vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: cabeçalho inválido: %w", err)
	}
	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := index["nome"]; !ok {
		return nil, errors.New("catalog: cabeçalho sem a coluna nome")
	}

	var forms []inventory.ProductForm
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if blank(record) {
			continue
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		forms = append(forms, inventory.ProductForm{
			Nome:              field(columns[0]),
			Descricao:         field(columns[1]),
			Preco:             field(columns[2]),
			QuantidadeEstoque: field(columns[3]),
			EstoqueMin:        field(columns[4]),
		})
	}
	return forms, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
