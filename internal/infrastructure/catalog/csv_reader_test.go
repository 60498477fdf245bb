package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/estoque-cliente/internal/infrastructure/catalog"
)

func TestReadProducts_ColumnasEnCualquierOrden(t *testing.T) {
	in := "Preco,NOME,estoque_min\n2.50,Caneta,6\n\n1,Borracha,2\n"

	forms, err := catalog.ReadProducts(strings.NewReader(in), catalog.Options{})
	require.NoError(t, err)

	require.Len(t, forms, 2, "las líneas vacías se ignoran")
	assert.Equal(t, "Caneta", forms[0].Nome)
	assert.Equal(t, "2.50", forms[0].Preco)
	assert.Equal(t, "6", forms[0].EstoqueMin)
	assert.Empty(t, forms[0].QuantidadeEstoque)
}

func TestReadProducts_PuntoYComaYLatin1(t *testing.T) {
	utf8 := "nome;descricao;preco;quantidade_estoque;estoque_min\nLápis;grafite nº 2;0,90;30;10\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	forms, err := catalog.ReadProducts(bytes.NewReader([]byte(latin1)), catalog.Options{Latin1: true, Comma: ';'})
	require.NoError(t, err)

	require.Len(t, forms, 1)
	assert.Equal(t, "Lápis", forms[0].Nome)
	assert.Equal(t, "grafite nº 2", forms[0].Descricao)
	assert.Equal(t, "0,90", forms[0].Preco)
	assert.Equal(t, "30", forms[0].QuantidadeEstoque)
}

func TestReadProducts_CabeceraInvalida(t *testing.T) {
	_, err := catalog.ReadProducts(strings.NewReader(""), catalog.Options{})
	assert.Error(t, err)

	_, err = catalog.ReadProducts(strings.NewReader("produto,preco\nCaneta,1\n"), catalog.Options{})
	assert.ErrorContains(t, err, "nome")
}
