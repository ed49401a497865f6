package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/memory"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUser = "00000000-0000-0000-0000-000000000001"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recordingObserver struct{ changed []string }

func (o *recordingObserver) IngredientCostChanged(_ context.Context, id string) {
	o.changed = append(o.changed, id)
}

func newLedger(t *testing.T) (*inventory.LedgerUseCase, *memory.Store, *recordingObserver) {
	t.Helper()
	store := memory.New(0)
	uc := inventory.NewLedgerUseCase(store, store.Ingredients(), store.Movements(), logger.Nop())
	obs := &recordingObserver{}
	uc.SetCostObserver(obs)
	return uc, store, obs
}

func newRice(t *testing.T, uc *inventory.LedgerUseCase) *entity.Ingredient {
	t.Helper()
	ing, err := uc.CreateIngredient(context.Background(), "Arroz", "kg", d("5"))
	require.NoError(t, err)
	return ing
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPurchase_PromedioPonderado(t *testing.T) {
	ctx := context.Background()
	uc, _, obs := newLedger(t)
	rice := newRice(t, uc)

	cost, err := uc.RecordPurchase(ctx, rice.ID, d("10"), d("2"), testUser)
	require.NoError(t, err)
	assert.True(t, cost.Equal(d("2")), "primera compra fija el costo de entrada")

	cost, err = uc.RecordPurchase(ctx, rice.ID, d("5"), d("3"), testUser)
	require.NoError(t, err)
	assert.Equal(t, "2.33", cost.Round(2).String())

	qty, unitCost, err := uc.CurrentStock(ctx, rice.ID)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("15")))
	assert.True(t, unitCost.Equal(cost))
	assert.Equal(t, []string{rice.ID, rice.ID}, obs.changed, "cada compra notifica el cambio de costo")
}

func TestRecordPurchase_CantidadOCostoNoPositivo(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newLedger(t)
	rice := newRice(t, uc)

	_, err := uc.RecordPurchase(ctx, rice.ID, d("0"), d("2"), testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = uc.RecordPurchase(ctx, rice.ID, d("3"), d("-1"), testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	qty, _, err := uc.CurrentStock(ctx, rice.ID)
	require.NoError(t, err)
	assert.True(t, qty.IsZero(), "una compra rechazada no modifica el stock")
}

func TestRecordPurchase_InsumoInexistente(t *testing.T) {
	uc, _, obs := newLedger(t)
	_, err := uc.RecordPurchase(context.Background(), "no-existe", d("1"), d("1"), testUser)
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
	assert.Empty(t, obs.changed)
}

func TestRecordPurchase_RegistraMovimientoDeEntrada(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newLedger(t)
	rice := newRice(t, uc)

	_, err := uc.RecordPurchase(ctx, rice.ID, d("10"), d("2"), testUser)
	require.NoError(t, err)

	movs, err := uc.ListMovements(ctx, rice.ID, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindEntry, movs[0].Kind)
	assert.Equal(t, entity.ReasonPurchase, movs[0].Reason)
	require.NotNil(t, movs[0].UnitCost)
	assert.True(t, movs[0].UnitCost.Equal(d("2")))
	assert.Equal(t, testUser, movs[0].CreatedBy)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mermas y ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordLoss_DescuentaSinCambiarCosto(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newLedger(t)
	rice := newRice(t, uc)
	_, err := uc.RecordPurchase(ctx, rice.ID, d("10"), d("2"), testUser)
	require.NoError(t, err)

	require.NoError(t, uc.RecordLoss(ctx, rice.ID, d("1.5"), "se quemó", testUser))

	qty, cost, err := uc.CurrentStock(ctx, rice.ID)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("8.5")))
	assert.True(t, cost.Equal(d("2")))

	movs, err := uc.ListMovements(ctx, rice.ID, nil, nil, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementKindLoss, movs[0].Kind, "más reciente primero")
	assert.Equal(t, "se quemó", movs[0].Reason)
	assert.Nil(t, movs[0].UnitCost)
}

func TestRecordLoss_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newLedger(t)
	rice := newRice(t, uc)
	_, err := uc.RecordPurchase(ctx, rice.ID, d("2"), d("2"), testUser)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.RecordLoss(ctx, rice.ID, d("0"), "x", testUser), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, uc.RecordLoss(ctx, rice.ID, d("1"), "  ", testUser), domain.ErrInvalidInput)

	err = uc.RecordLoss(ctx, rice.ID, d("3"), "vencido", testUser)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, rice.ID, stockErr.IngredientID)
	assert.True(t, stockErr.Required.Equal(d("3")))
	assert.True(t, stockErr.Available.Equal(d("2")))

	qty, _, _ := uc.CurrentStock(ctx, rice.ID)
	assert.True(t, qty.Equal(d("2")), "una merma rechazada no modifica el stock")
}

func TestRecordAdjustment_ConSigno(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newLedger(t)
	rice := newRice(t, uc)
	_, err := uc.RecordPurchase(ctx, rice.ID, d("10"), d("2"), testUser)
	require.NoError(t, err)

	require.NoError(t, uc.RecordAdjustment(ctx, rice.ID, d("-0.5"), "conteo físico", testUser))
	require.NoError(t, uc.RecordAdjustment(ctx, rice.ID, d("2"), "conteo físico", testUser))

	qty, cost, err := uc.CurrentStock(ctx, rice.ID)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("11.5")))
	assert.True(t, cost.Equal(d("2")), "el ajuste no altera el costo promedio")

	assert.ErrorIs(t, uc.RecordAdjustment(ctx, rice.ID, d("0"), "x", testUser), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, uc.RecordAdjustment(ctx, rice.ID, d("-20"), "x", testUser), domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrentStock_InsumoInexistente(t *testing.T) {
	uc, _, _ := newLedger(t)
	_, _, err := uc.CurrentStock(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
}

func TestCreateIngredient_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newLedger(t)

	_, err := uc.CreateIngredient(ctx, "", "kg", d("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateIngredient(ctx, "Sal", "kg", d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	newRice(t, uc)
	_, err = uc.CreateIngredient(ctx, "arroz", "kg", d("1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "nombre repetido sin distinguir mayúsculas")
}

func TestApplyConsumptionInTx_RegistraReferenciaDeVenta(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newLedger(t)
	rice := newRice(t, uc)
	_, err := uc.RecordPurchase(ctx, rice.ID, d("10"), d("2"), testUser)
	require.NoError(t, err)

	err = store.Run(ctx, func(ingRepo repository.IngredientRepository, movRepo repository.MovementRepository) error {
		return uc.ApplyConsumptionInTx(ctx, ingRepo, movRepo, rice.ID, d("4"), "sale-1", testUser, time.Now())
	})
	require.NoError(t, err)

	movs, err := uc.ListMovements(ctx, rice.ID, nil, nil, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindExit, movs[0].Kind)
	assert.Equal(t, entity.ReasonSaleConsumption, movs[0].Reason)
	assert.Equal(t, "sale-1", movs[0].Reference)
	assert.True(t, movs[0].Quantity.Equal(d("4")))
}

func TestLedger_InsumoInactivoEsInexistente(t *testing.T) {
	ctx := context.Background()
	uc, store, obs := newLedger(t)
	require.NoError(t, store.Ingredients().Create(ctx, &entity.Ingredient{
		ID: "ing-inactivo", Name: "Jengibre", Unit: "kg",
		StockQuantity: d("3"), UnitCost: d("4"), Active: false,
	}))

	_, err := uc.RecordPurchase(ctx, "ing-inactivo", d("1"), d("5"), testUser)
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
	err = uc.RecordLoss(ctx, "ing-inactivo", d("1"), "vencido", testUser)
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
	err = uc.RecordAdjustment(ctx, "ing-inactivo", d("-1"), "conteo", testUser)
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)

	ing, err := store.Ingredients().GetByID(ctx, "ing-inactivo")
	require.NoError(t, err)
	assert.True(t, ing.StockQuantity.Equal(d("3")))
	assert.True(t, ing.UnitCost.Equal(d("4")))
	movs, err := uc.ListMovements(ctx, "ing-inactivo", nil, nil, dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Empty(t, movs)
	assert.Empty(t, obs.changed)
}

func TestLedger_CantidadQueRedondeaACeroEsInvalida(t *testing.T) {
	ctx := context.Background()
	uc, _, obs := newLedger(t)
	rice := newRice(t, uc)

	_, err := uc.RecordPurchase(ctx, rice.ID, d("0.0000001"), d("2"), testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = uc.RecordPurchase(ctx, rice.ID, d("1"), d("0.0000004"), testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	err = uc.RecordLoss(ctx, rice.ID, d("0.0000001"), "merma", testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	movs, err := uc.ListMovements(ctx, rice.ID, nil, nil, dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Empty(t, movs, "un movimiento que redondea a cero no se registra")
	assert.Empty(t, obs.changed)
}

func TestRecordPurchase_NormalizaAEscalaDeAlmacenamiento(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newLedger(t)
	rice := newRice(t, uc)

	_, err := uc.RecordPurchase(ctx, rice.ID, d("1.23456789"), d("2"), testUser)
	require.NoError(t, err)

	qty, _, err := uc.CurrentStock(ctx, rice.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.234568", qty.String())
	movs, err := uc.ListMovements(ctx, rice.ID, nil, nil, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Quantity.Equal(qty), "el movimiento y el stock usan la misma cantidad")
}

func TestListMovements_Paginacion(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newLedger(t)
	rice := newRice(t, uc)
	for _, q := range []string{"1", "2", "3"} {
		_, err := uc.RecordPurchase(ctx, rice.ID, d(q), d("2"), testUser)
		require.NoError(t, err)
	}

	movs, err := uc.ListMovements(ctx, rice.ID, nil, nil, dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.True(t, movs[0].Quantity.Equal(d("2")), "saltea la compra más reciente")
	assert.True(t, movs[1].Quantity.Equal(d("1")))

	movs, err = uc.ListMovements(ctx, rice.ID, nil, nil, dto.PageRequest{Limit: 10000, Offset: -4})
	require.NoError(t, err)
	assert.Len(t, movs, 3, "límite excedido vuelve al valor por defecto y offset negativo a cero")
}

func TestPageRequest_Clamp(t *testing.T) {
	p := dto.PageRequest{}
	p.Clamp(inventory.MovementsPageDefault, inventory.MovementsPageMax)
	assert.Equal(t, dto.PageRequest{Limit: 100, Offset: 0}, p)

	p = dto.PageRequest{Limit: 501, Offset: -1}
	p.Clamp(inventory.MovementsPageDefault, inventory.MovementsPageMax)
	assert.Equal(t, dto.PageRequest{Limit: 100, Offset: 0}, p)

	p = dto.PageRequest{Limit: 500, Offset: 7}
	p.Clamp(inventory.MovementsPageDefault, inventory.MovementsPageMax)
	assert.Equal(t, dto.PageRequest{Limit: 500, Offset: 7}, p)
}
