package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func draftConDosLineas(t *testing.T) *entity.Sale {
	t.Helper()
	s := entity.NewDraftSale("salon")
	require.NoError(t, s.AddLine("bowl", d("2"), d("6")))
	require.NoError(t, s.AddLine("roll", d("1"), d("8.5")))
	return s
}

func TestSale_DraftAgregaYQuitaLineas(t *testing.T) {
	s := draftConDosLineas(t)
	assert.Equal(t, entity.SaleStatusDraft, s.Status)
	require.Len(t, s.Lines, 2)
	assert.True(t, s.Lines[0].LineTotal.Equal(d("12")))
	assert.True(t, s.Total.Equal(d("20.5")), "total obtenido %s", s.Total)

	require.NoError(t, s.RemoveLine(0))
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "roll", s.Lines[0].ProductID)
	assert.True(t, s.Total.Equal(d("8.5")))
}

func TestSale_RemoveLineFueraDeRango(t *testing.T) {
	s := draftConDosLineas(t)

	assert.ErrorIs(t, s.RemoveLine(-1), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.RemoveLine(2), domain.ErrInvalidInput)
	assert.Len(t, s.Lines, 2)
	assert.True(t, s.Total.Equal(d("20.5")))
}

func TestSale_ClearVaciaElCarrito(t *testing.T) {
	s := draftConDosLineas(t)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Lines)
	assert.True(t, s.Total.IsZero())
	assert.Equal(t, entity.SaleStatusDraft, s.Status, "el carrito sigue abierto")
	require.NoError(t, s.AddLine("bowl", d("1"), d("6")))
}

func TestSale_TransicionesValidas(t *testing.T) {
	s := draftConDosLineas(t)
	assert.False(t, s.IsTerminal())

	require.NoError(t, s.BeginValidation())
	assert.Equal(t, entity.SaleStatusValidating, s.Status)
	assert.False(t, s.IsTerminal())

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkCommitted(at))
	assert.Equal(t, entity.SaleStatusCommitted, s.Status)
	assert.Equal(t, at, s.CreatedAt)
	assert.True(t, s.IsTerminal())

	a := draftConDosLineas(t)
	require.NoError(t, a.BeginValidation())
	require.NoError(t, a.MarkAborted())
	assert.Equal(t, entity.SaleStatusAborted, a.Status)
	assert.True(t, a.IsTerminal())
}

func TestSale_DesdeDraftNoSeCierra(t *testing.T) {
	s := draftConDosLineas(t)

	assert.ErrorIs(t, s.MarkCommitted(time.Now()), domain.ErrInvalidSaleState)
	assert.ErrorIs(t, s.MarkAborted(), domain.ErrInvalidSaleState)
	assert.Equal(t, entity.SaleStatusDraft, s.Status)
	assert.True(t, s.CreatedAt.IsZero())
}

func TestSale_FueraDeDraftNoSeModifica(t *testing.T) {
	validating := draftConDosLineas(t)
	require.NoError(t, validating.BeginValidation())

	committed := draftConDosLineas(t)
	require.NoError(t, committed.BeginValidation())
	require.NoError(t, committed.MarkCommitted(time.Now()))

	aborted := draftConDosLineas(t)
	require.NoError(t, aborted.BeginValidation())
	require.NoError(t, aborted.MarkAborted())

	cases := map[string]*entity.Sale{
		entity.SaleStatusValidating: validating,
		entity.SaleStatusCommitted:  committed,
		entity.SaleStatusAborted:    aborted,
	}
	for status, s := range cases {
		t.Run(status, func(t *testing.T) {
			assert.ErrorIs(t, s.AddLine("soda", d("1"), d("2")), domain.ErrInvalidSaleState)
			assert.ErrorIs(t, s.RemoveLine(0), domain.ErrInvalidSaleState)
			assert.ErrorIs(t, s.Clear(), domain.ErrInvalidSaleState)
			assert.ErrorIs(t, s.BeginValidation(), domain.ErrInvalidSaleState)

			assert.Equal(t, status, s.Status)
			assert.Len(t, s.Lines, 2)
			assert.True(t, s.Total.Equal(d("20.5")))
		})
	}

	assert.ErrorIs(t, committed.MarkAborted(), domain.ErrInvalidSaleState)
	assert.ErrorIs(t, aborted.MarkCommitted(time.Now()), domain.ErrInvalidSaleState)
	assert.ErrorIs(t, committed.MarkCommitted(time.Now()), domain.ErrInvalidSaleState)
}
