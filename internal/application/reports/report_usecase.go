// Package reports contiene los casos de uso de lectura sobre el libro de insumos y las ventas:
// estado de resultados, márgenes por producto, KPIs operacionales y lista de reposición.
package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var (
	hundred        = decimal.NewFromInt(100)
	idealStockRate = decimal.NewFromFloat(1.5)
)

// ReportUseCase genera los reportes de gestión.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) e IngredientRepository para reposición.
type ReportUseCase struct {
	analyticsRepo  repository.AnalyticsRepository
	ingredientRepo repository.IngredientRepository
	expenseRepo    repository.ExpenseRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	analyticsRepo repository.AnalyticsRepository,
	ingredientRepo repository.IngredientRepository,
	expenseRepo repository.ExpenseRepository,
) *ReportUseCase {
	return &ReportUseCase{
		analyticsRepo:  analyticsRepo,
		ingredientRepo: ingredientRepo,
		expenseRepo:    expenseRepo,
	}
}

// Period normaliza [from, to] a días completos: from a las 00:00 y to a las 23:59:59.999.
func Period(from, to time.Time) (time.Time, time.Time, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).Add(24*time.Hour - time.Nanosecond)
	if end.Before(start) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return start, end, nil
}

// ProfitAndLoss estado de resultados: ingresos - CMV = margen bruto; margen bruto - gastos = utilidad neta.
func (uc *ReportUseCase) ProfitAndLoss(ctx context.Context, from, to time.Time) (*dto.ProfitAndLossDTO, error) {
	start, end, err := Period(from, to)
	if err != nil {
		return nil, err
	}
	revenue, cogs, err := uc.analyticsRepo.GetSalesMetrics(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("pnl: métricas de ventas: %w", err)
	}
	expenses, err := uc.analyticsRepo.GetOperatingExpenses(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("pnl: gastos operativos: %w", err)
	}
	gross := revenue.Sub(cogs)
	return &dto.ProfitAndLossDTO{
		From:              start,
		To:                end,
		Revenue:           revenue.Round(2),
		COGS:              cogs.Round(2),
		GrossMargin:       gross.Round(2),
		OperatingExpenses: expenses.Round(2),
		NetProfit:         gross.Sub(expenses).Round(2),
	}, nil
}

// ProductMargins ranking de productos por unidades vendidas con su margen.
func (uc *ReportUseCase) ProductMargins(ctx context.Context, from, to time.Time) ([]dto.ProductMarginDTO, error) {
	start, end, err := Period(from, to)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.GetProductMargins(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("márgenes: %w", err)
	}
	out := make([]dto.ProductMarginDTO, 0, len(rows))
	for i, r := range rows {
		pct := inventory.MarginPct(r.GrossRevenue, r.TotalCOGS)
		out = append(out, dto.ProductMarginDTO{
			Rank:        i + 1,
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.GrossRevenue.Round(2),
			COGS:        r.TotalCOGS.Round(2),
			GrossMargin: r.GrossRevenue.Sub(r.TotalCOGS).Round(2),
			MarginPct:   pct,
			LowMargin:   pct.LessThan(inventory.LowMarginPct),
		})
	}
	return out, nil
}

// OperationalKPIs calcula tasa de quiebre, rotación de inventario y % de merma.
//
// Tres consultas en paralelo:
//  1. GetStockHealth               → quiebre y valor de inventario
//  2. GetSalesMetrics(período)     → CMV del período
//  3. GetLossAndPurchaseValue      → merma y compras del período
func (uc *ReportUseCase) OperationalKPIs(ctx context.Context, from, to time.Time) (*dto.OperationalKPIsDTO, error) {
	start, end, err := Period(from, to)
	if err != nil {
		return nil, err
	}

	var (
		health          repository.StockHealthResult
		cogs            decimal.Decimal
		loss, purchases decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if health, err = uc.analyticsRepo.GetStockHealth(gctx); err != nil {
			return fmt.Errorf("kpis: salud de stock: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if _, cogs, err = uc.analyticsRepo.GetSalesMetrics(gctx, start, end); err != nil {
			return fmt.Errorf("kpis: CMV del período: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if loss, purchases, err = uc.analyticsRepo.GetLossAndPurchaseValue(gctx, start, end); err != nil {
			return fmt.Errorf("kpis: mermas y compras: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.OperationalKPIsDTO{
		StockoutRatePct:     decimal.Zero,
		CriticalIngredients: health.CriticalIngredients,
		ActiveIngredients:   health.ActiveIngredients,
		InventoryRotation:   decimal.Zero,
		PeriodCOGS:          cogs.Round(2),
		InventoryValue:      health.InventoryValue.Round(2),
		LossPct:             decimal.Zero,
		LossValue:           loss.Round(2),
		PurchaseValue:       purchases.Round(2),
	}
	if health.ActiveIngredients > 0 {
		out.StockoutRatePct = decimal.NewFromInt(int64(health.CriticalIngredients)).
			Div(decimal.NewFromInt(int64(health.ActiveIngredients))).Mul(hundred).Round(2)
	}
	if health.InventoryValue.IsPositive() {
		out.InventoryRotation = cogs.Div(health.InventoryValue).Round(2)
	}
	if purchases.IsPositive() {
		out.LossPct = loss.Div(purchases).Mul(hundred).Round(2)
	}
	return out, nil
}

// Replenishment devuelve los insumos en o bajo su umbral con la cantidad sugerida de compra.
// Orden: primero los agotados, luego mayor déficit.
func (uc *ReportUseCase) Replenishment(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.ingredientRepo.ListBelowReorder(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, ing := range items {
		ideal := ing.ReorderThreshold.Mul(idealStockRate)
		qty := ideal.Sub(ing.StockQuantity)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			IngredientID:       ing.ID,
			IngredientName:     ing.Name,
			Unit:               ing.Unit,
			CurrentStock:       ing.StockQuantity,
			ReorderThreshold:   ing.ReorderThreshold,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           ing.UnitCost,
			EstimatedOrderCost: qty.Mul(ing.UnitCost).Round(2),
			OutOfStock:         !ing.StockQuantity.IsPositive(),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.OutOfStock != b.OutOfStock {
			return a.OutOfStock
		}
		defA := a.ReorderThreshold.Sub(a.CurrentStock)
		defB := b.ReorderThreshold.Sub(b.CurrentStock)
		return defA.GreaterThan(defB)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// RecordExpense registra un gasto operativo para el estado de resultados.
func (uc *ReportUseCase) RecordExpense(ctx context.Context, description string, amount decimal.Decimal, date time.Time) (*entity.OperatingExpense, error) {
	description = strings.TrimSpace(description)
	if description == "" || date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	amount = inventory.Normalize(amount)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	e := &entity.OperatingExpense{
		ID:          uuid.New().String(),
		Description: description,
		Amount:      amount,
		Date:        date,
		CreatedAt:   time.Now(),
	}
	if err := uc.expenseRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
