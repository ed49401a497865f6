package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// AnalyticsRepo implementa repository.AnalyticsRepository sobre el estado publicado.
type AnalyticsRepo struct{ scope }

func (r *AnalyticsRepo) GetSalesMetrics(_ context.Context, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	revenue, cogs := decimal.Zero, decimal.Zero
	r.read(func(st *state) {
		for _, s := range st.sales {
			if s.Status != entity.SaleStatusCommitted || !inRange(s.CreatedAt, start, end) {
				continue
			}
			revenue = revenue.Add(s.Total)
			cogs = cogs.Add(s.TotalCOGS)
		}
	})
	return revenue, cogs, nil
}

func (r *AnalyticsRepo) GetOperatingExpenses(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	r.read(func(st *state) {
		for _, e := range st.expenses {
			if inRange(e.Date, start, end) {
				total = total.Add(e.Amount)
			}
		}
	})
	return total, nil
}

func (r *AnalyticsRepo) GetProductMargins(_ context.Context, start, end time.Time) ([]repository.ProductMarginResult, error) {
	byProduct := make(map[string]*repository.ProductMarginResult)
	r.read(func(st *state) {
		for id, s := range st.sales {
			if s.Status != entity.SaleStatusCommitted || !inRange(s.CreatedAt, start, end) {
				continue
			}
			for _, l := range st.saleLines[id] {
				m, ok := byProduct[l.ProductID]
				if !ok {
					m = &repository.ProductMarginResult{ProductID: l.ProductID, ProductName: st.products[l.ProductID].Name}
					byProduct[l.ProductID] = m
				}
				m.UnitsSold = m.UnitsSold.Add(l.Quantity)
				m.GrossRevenue = m.GrossRevenue.Add(l.LineTotal)
				m.TotalCOGS = m.TotalCOGS.Add(l.LineCOGS)
			}
		}
	})
	out := make([]repository.ProductMarginResult, 0, len(byProduct))
	for _, m := range byProduct {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b repository.ProductMarginResult) int {
		if c := b.UnitsSold.Cmp(a.UnitsSold); c != 0 {
			return c
		}
		return strings.Compare(a.ProductID, b.ProductID)
	})
	return out, nil
}

func (r *AnalyticsRepo) GetStockHealth(_ context.Context) (repository.StockHealthResult, error) {
	var res repository.StockHealthResult
	r.read(func(st *state) {
		for _, ing := range st.ingredients {
			if !ing.Active {
				continue
			}
			res.ActiveIngredients++
			if ing.IsCritical() {
				res.CriticalIngredients++
			}
			res.InventoryValue = res.InventoryValue.Add(ing.StockQuantity.Mul(ing.UnitCost))
		}
	})
	return res, nil
}

func (r *AnalyticsRepo) GetLossAndPurchaseValue(_ context.Context, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	loss, purchases := decimal.Zero, decimal.Zero
	r.read(func(st *state) {
		for _, m := range st.movements {
			if !inRange(m.CreatedAt, start, end) {
				continue
			}
			switch m.Kind {
			case entity.MovementKindLoss:
				loss = loss.Add(m.Quantity.Mul(st.ingredients[m.IngredientID].UnitCost))
			case entity.MovementKindEntry:
				if m.UnitCost != nil {
					purchases = purchases.Add(m.Quantity.Mul(*m.UnitCost))
				}
			}
		}
	})
	return loss, purchases, nil
}
