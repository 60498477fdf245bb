package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-cliente/internal/application/inventory"
	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

var caneta = entity.Product{ID: 1, Nome: "Caneta", QuantidadeEstoque: 10, EstoqueMin: 6}

func saida(qtd string) inventory.MovementForm {
	return inventory.MovementForm{Produto: "1", Tipo: entity.MovementTypeSaida, Quantidade: qtd}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_ProdutoVacioNoHacePeticion(t *testing.T) {
	gw := &fakeMovements{}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	_, err := uc.Submit(context.Background(), inventory.MovementForm{Tipo: "saida", Quantidade: "5"}, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, gw.calls, "ninguna llamada de red")
}

func TestSubmit_QuantidadeVaciaOInvalida(t *testing.T) {
	gw := &fakeMovements{}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	for _, q := range []string{"", "   ", "cinco", "2.5"} {
		_, err := uc.Submit(context.Background(), saida(q), nil)
		assert.ErrorIs(t, err, domain.ErrValidation, "quantidade %q", q)
	}
	_, err := uc.Submit(context.Background(), inventory.MovementForm{Produto: "1", Tipo: "ajuste", Quantidade: "1"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation, "tipo desconocido")
	assert.Zero(t, gw.calls)
}

func TestSubmit_NegativoYCeroSeEnvian(t *testing.T) {
	gw := &fakeMovements{}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	_, err := uc.Submit(context.Background(), saida("-3"), nil)
	require.NoError(t, err)
	_, err = uc.Submit(context.Background(), saida("0"), nil)
	require.NoError(t, err)

	require.Len(t, gw.created, 2)
	assert.Equal(t, -3, gw.created[0].Quantidade, "el cliente no valida el signo")
	assert.Equal(t, 0, gw.created[1].Quantidade)
}

func TestSubmit_NotacionNumericaEntera(t *testing.T) {
	gw := &fakeMovements{}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	for _, q := range []string{"1e1", "4.0"} {
		_, err := uc.Submit(context.Background(), saida(q), nil)
		require.NoError(t, err, "quantidade %q", q)
	}
	require.Len(t, gw.created, 2)
	assert.Equal(t, 10, gw.created[0].Quantidade)
	assert.Equal(t, 4, gw.created[1].Quantidade)
}

func TestMovementForm_Validate(t *testing.T) {
	assert.ErrorIs(t, inventory.MovementForm{Quantidade: "5"}.Validate(), domain.ErrValidation)
	assert.ErrorIs(t, saida("2.5").Validate(), domain.ErrValidation)
	assert.NoError(t, saida("5").Validate())
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío correcto
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_CreaRecargaYLimpiaFormulario(t *testing.T) {
	gw := &fakeMovements{}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	res, err := uc.Submit(context.Background(),
		inventory.MovementForm{Produto: " 1 ", Tipo: "entrada", Quantidade: " 4 "}, []entity.Product{caneta})
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, int64(1), gw.created[0].Produto)
	assert.Equal(t, 4, gw.created[0].Quantidade)
	assert.Len(t, res.Movements, 1, "la lista se recarga tras el envío")
	assert.Equal(t, inventory.EmptyMovementForm(), res.Form, "el formulario queda limpio")
	assert.Nil(t, res.Advisory, "una entrada nunca avisa")
}

func TestSubmit_ConIDActualiza(t *testing.T) {
	gw := &fakeMovements{}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	form := inventory.FormFromMovement(entity.Movement{ID: 7, ProdutoID: 1, Tipo: "saida", Quantidade: 2})
	res, err := uc.Submit(context.Background(), form, []entity.Product{caneta})
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.Equal(t, 2, gw.updated[7].Quantidade)
	assert.Empty(t, gw.created)
}

func TestSubmit_FalloDeRecargaNoInvalidaElEnvio(t *testing.T) {
	gw := &fakeMovements{listErr: errors.New("HTTP 500")}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	res, err := uc.Submit(context.Background(), saida("1"), nil)
	require.NoError(t, err)
	assert.Error(t, res.ReloadErr)
	assert.Nil(t, res.Movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aviso de estoque bajo (lista previa)
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_SaidaQueDejaEnMinimoAvisa(t *testing.T) {
	gw := &fakeMovements{}
	notif := &fakeNotifier{}
	uc := inventory.NewMovementUseCase(gw, inventory.AdvisorySnapshot, nil, notif)

	res, err := uc.Submit(context.Background(), saida("5"), []entity.Product{caneta})
	require.NoError(t, err)

	require.NotNil(t, res.Advisory, "10 - 5 = 5 <= 6 debe avisar")
	assert.Equal(t, "Caneta", res.Advisory.ProductName)
	assert.Equal(t, 6, res.Advisory.EstoqueMin)
	assert.Equal(t, 5, res.Advisory.Projected)
	assert.Contains(t, res.Advisory.Message, "Caneta")
	assert.Contains(t, res.Advisory.Message, "(6)")
	require.Len(t, notif.got, 1, "el aviso se publica")
}

func TestSubmit_SaidaPequenaNoAvisa(t *testing.T) {
	notif := &fakeNotifier{}
	uc := inventory.NewMovementUseCase(&fakeMovements{}, inventory.AdvisorySnapshot, nil, notif)

	res, err := uc.Submit(context.Background(), saida("2"), []entity.Product{caneta})
	require.NoError(t, err)

	assert.Nil(t, res.Advisory, "10 - 2 = 8 > 6 no avisa")
	assert.Empty(t, notif.got)
}

func TestSubmit_LimiteExactoAvisa(t *testing.T) {
	uc := inventory.NewMovementUseCase(&fakeMovements{}, inventory.AdvisorySnapshot, nil)

	res, err := uc.Submit(context.Background(), saida("4"), []entity.Product{caneta})
	require.NoError(t, err)
	require.NotNil(t, res.Advisory, "10 - 4 = 6 == mínimo avisa")

	res, err = uc.Submit(context.Background(), saida("3"), []entity.Product{caneta})
	require.NoError(t, err)
	assert.Nil(t, res.Advisory, "10 - 3 = 7 no avisa")
}

func TestSubmit_ProductoFueraDeLaListaNoAvisa(t *testing.T) {
	uc := inventory.NewMovementUseCase(&fakeMovements{}, inventory.AdvisorySnapshot, nil)

	res, err := uc.Submit(context.Background(),
		inventory.MovementForm{Produto: "99", Tipo: "saida", Quantidade: "50"}, []entity.Product{caneta})
	require.NoError(t, err)
	assert.Nil(t, res.Advisory)
}

func TestSubmit_ErrorDeNotificadorNoFallaElEnvio(t *testing.T) {
	notif := &fakeNotifier{err: errors.New("broker caído")}
	uc := inventory.NewMovementUseCase(&fakeMovements{}, inventory.AdvisorySnapshot, nil, notif)

	res, err := uc.Submit(context.Background(), saida("9"), []entity.Product{caneta})
	require.NoError(t, err)
	assert.NotNil(t, res.Advisory)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aviso de estoque bajo (servidor)
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_ModoServidorUsaAlertaDelBackend(t *testing.T) {
	gw := &fakeMovements{alerta: true, mensagem: "Alerta: estoque do produto 'Caneta' está abaixo do mínimo configurado."}
	uc := inventory.NewMovementUseCase(gw, inventory.AdvisoryServer, nil)

	// con la lista previa 10 - 2 = 8 no avisaría; el servidor sabe más
	res, err := uc.Submit(context.Background(), saida("2"), []entity.Product{caneta})
	require.NoError(t, err)

	require.NotNil(t, res.Advisory)
	assert.Equal(t, entity.AdvisorySourceServer, res.Advisory.Source)
	assert.Equal(t, gw.mensagem, res.Advisory.Message)
	assert.Equal(t, "Caneta", res.Advisory.ProductName)
}

func TestSubmit_ModoServidorSinAlerta(t *testing.T) {
	uc := inventory.NewMovementUseCase(&fakeMovements{alerta: false}, inventory.AdvisoryServer, nil)

	// con la lista previa 10 - 5 = 5 avisaría; el servidor dice que no
	res, err := uc.Submit(context.Background(), saida("5"), []entity.Product{caneta})
	require.NoError(t, err)
	assert.Nil(t, res.Advisory)
}

func TestSubmit_ModoServidorEnActualizacionUsaLista(t *testing.T) {
	uc := inventory.NewMovementUseCase(&fakeMovements{}, inventory.AdvisoryServer, nil)

	form := saida("5")
	form.ID = "3"
	res, err := uc.Submit(context.Background(), form, []entity.Product{caneta})
	require.NoError(t, err)
	require.NotNil(t, res.Advisory, "PUT no trae alerta: se calcula con la lista")
	assert.Equal(t, entity.AdvisorySourceSnapshot, res.Advisory.Source)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_FalloDelBackendEsSubmissionFailed(t *testing.T) {
	gw := &fakeMovements{createErr: &domain.APIError{Status: 400, Detail: "Quantidade de saída maior que o estoque disponível."}}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	form := saida("500")
	res, err := uc.Submit(context.Background(), form, []entity.Product{caneta})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrSubmissionFailed)
	assert.Equal(t, "Quantidade de saída maior que o estoque disponível.", domain.Detail(err))
	assert.Equal(t, "500", form.Quantidade, "el formulario del llamador no cambia")
	assert.Equal(t, 1, gw.calls, "sin recarga tras un fallo")
}

func TestSubmit_SesionExpiradaNoSeEnmascara(t *testing.T) {
	gw := &fakeMovements{createErr: domain.ErrSessionExpired}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	_, err := uc.Submit(context.Background(), saida("1"), nil)

	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.NotErrorIs(t, err, domain.ErrSubmissionFailed)
}

func TestDelete_PropagaDetalle(t *testing.T) {
	gw := &fakeMovements{createErr: &domain.APIError{Status: 404, Detail: "Não encontrado."}}
	uc := inventory.NewMovementUseCase(gw, "", nil)

	err := uc.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []int64{3}, gw.deleted)
}
