package reports_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
	"github.com/jhoicas/Restaurante-api/internal/application/reports"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/memory"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newReports arma un día de operación:
//   - Arroz: compra 10 kg @ $2, merma 1 kg, 3 bowls vendidos (1 kg c/u) → quedan 6 kg, umbral 2.
//   - Nori: compra 20 un @ $1, umbral 25 → crítico.
//   - Ventas: 3 bowls @ $6 y 5 bebidas sin receta @ $2. Gasto operativo $4.
func newReports(t *testing.T) (*reports.ReportUseCase, string) {
	t.Helper()
	ctx := context.Background()
	store := memory.New(0)
	ledger := inventory.NewLedgerUseCase(store, store.Ingredients(), store.Movements(), logger.Nop())
	catalog := recipe.NewCatalogUseCase(store.Products(), store.Recipes(), store.Ingredients(), nil, 0, logger.Nop())
	commit := sales.NewCommitSaleUseCase(store, ledger, store.Products(), 0, logger.Nop())
	uc := reports.NewReportUseCase(store.Analytics(), store.Ingredients(), store.Expenses())

	rice, err := ledger.CreateIngredient(ctx, "Arroz", "kg", d("2"))
	require.NoError(t, err)
	nori, err := ledger.CreateIngredient(ctx, "Nori", "un", d("25"))
	require.NoError(t, err)
	_, err = ledger.RecordPurchase(ctx, rice.ID, d("10"), d("2"), "")
	require.NoError(t, err)
	_, err = ledger.RecordPurchase(ctx, nori.ID, d("20"), d("1"), "")
	require.NoError(t, err)
	require.NoError(t, ledger.RecordLoss(ctx, rice.ID, d("1"), "derrame", ""))

	bowl, err := catalog.CreateProduct(ctx, dto.CreateProductRequest{Name: "Bowl", Price: d("6")})
	require.NoError(t, err)
	require.NoError(t, catalog.SetRecipeLine(ctx, bowl.ID, rice.ID, d("1")))
	soda, err := catalog.CreateProduct(ctx, dto.CreateProductRequest{Name: "Bebida", Price: d("2")})
	require.NoError(t, err)

	_, err = commit.CommitSale(ctx, "", dto.CommitSaleRequest{Lines: []dto.SaleLineRequest{
		{ProductID: bowl.ID, Quantity: d("3")},
		{ProductID: soda.ID, Quantity: d("5")},
	}})
	require.NoError(t, err)

	_, err = uc.RecordExpense(ctx, "gas", d("4"), time.Now())
	require.NoError(t, err)
	return uc, nori.ID
}

func TestProfitAndLoss(t *testing.T) {
	uc, _ := newReports(t)
	now := time.Now()
	pnl, err := uc.ProfitAndLoss(context.Background(), now, now)
	require.NoError(t, err)
	assert.True(t, pnl.Revenue.Equal(d("28")), "ingresos %s", pnl.Revenue)
	assert.True(t, pnl.COGS.Equal(d("6")), "CMV %s", pnl.COGS)
	assert.True(t, pnl.GrossMargin.Equal(d("22")))
	assert.True(t, pnl.OperatingExpenses.Equal(d("4")))
	assert.True(t, pnl.NetProfit.Equal(d("18")))
}

func TestProfitAndLoss_PeriodoSinVentas(t *testing.T) {
	uc, _ := newReports(t)
	lastYear := time.Now().AddDate(-1, 0, 0)
	pnl, err := uc.ProfitAndLoss(context.Background(), lastYear, lastYear)
	require.NoError(t, err)
	assert.True(t, pnl.Revenue.IsZero())
	assert.True(t, pnl.NetProfit.IsZero())
}

func TestProfitAndLoss_RangoInvertido(t *testing.T) {
	uc, _ := newReports(t)
	now := time.Now()
	_, err := uc.ProfitAndLoss(context.Background(), now, now.AddDate(0, 0, -2))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductMargins_RankingPorUnidades(t *testing.T) {
	uc, _ := newReports(t)
	now := time.Now()
	rows, err := uc.ProductMargins(context.Background(), now, now)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Bebida", rows[0].ProductName)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "100", rows[0].MarginPct.String())
	assert.False(t, rows[0].LowMargin)

	assert.Equal(t, "Bowl", rows[1].ProductName)
	assert.Equal(t, "66.67", rows[1].MarginPct.String())
	assert.True(t, rows[1].COGS.Equal(d("6")))
}

func TestOperationalKPIs(t *testing.T) {
	uc, _ := newReports(t)
	now := time.Now()
	kpis, err := uc.OperationalKPIs(context.Background(), now, now)
	require.NoError(t, err)

	assert.Equal(t, 2, kpis.ActiveIngredients)
	assert.Equal(t, 1, kpis.CriticalIngredients)
	assert.Equal(t, "50", kpis.StockoutRatePct.String())
	assert.True(t, kpis.InventoryValue.Equal(d("32")), "6 kg * $2 + 20 un * $1")
	assert.Equal(t, "0.19", kpis.InventoryRotation.String(), "6 / 32")
	assert.True(t, kpis.LossValue.Equal(d("2")))
	assert.True(t, kpis.PurchaseValue.Equal(d("40")))
	assert.Equal(t, "5", kpis.LossPct.String())
}

func TestReplenishment_SugiereCompra(t *testing.T) {
	uc, noriID := newReports(t)
	list, err := uc.Replenishment(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	s := list[0]
	assert.Equal(t, noriID, s.IngredientID)
	assert.Equal(t, 1, s.Priority)
	assert.True(t, s.IdealStock.Equal(d("37.5")))
	assert.True(t, s.SuggestedOrderQty.Equal(d("17.5")))
	assert.True(t, s.EstimatedOrderCost.Equal(d("17.5")))
	assert.False(t, s.OutOfStock)
}

func TestRecordExpense_Validaciones(t *testing.T) {
	uc, _ := newReports(t)
	ctx := context.Background()
	_, err := uc.RecordExpense(ctx, "", d("1"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordExpense(ctx, "luz", d("0"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestDashboard_ResumenDelDiaYDelMes(t *testing.T) {
	uc, _ := newReports(t)
	now := time.Now()
	sum, err := uc.Dashboard(context.Background(), now)
	require.NoError(t, err)

	assert.True(t, sum.TodaySales.Equal(d("28")))
	assert.True(t, sum.TodayMargin.Equal(d("22")))
	assert.True(t, sum.MonthlySales.Equal(d("28")))
	require.Len(t, sum.TopProducts, 2)
	assert.Equal(t, "Bebida", sum.TopProducts[0].ProductName)
	assert.Contains(t, sum.DateLabel, strconv.Itoa(now.Year()))
}
