package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para estado de resultados, márgenes y KPIs.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesMetrics devuelve Σ total y Σ CMV de las ventas confirmadas del período.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0), COALESCE(SUM(total_cogs), 0)
	FROM sales
	WHERE status = 'committed'
	  AND created_at BETWEEN $1 AND $2`
	var revenue, cogs decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, startDate, endDate).Scan(&revenue, &cogs); err != nil {
		return decimal.Zero, decimal.Zero, mapError("sales metrics", err)
	}
	return revenue, cogs, nil
}

// GetOperatingExpenses suma los gastos operativos del período.
func (r *AnalyticsRepo) GetOperatingExpenses(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(amount), 0)
	FROM operating_expenses
	WHERE expense_date BETWEEN $1::date AND $2::date`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, startDate, endDate).Scan(&total); err != nil {
		return decimal.Zero, mapError("operating expenses", err)
	}
	return total, nil
}

// GetProductMargins agrupa las líneas vendidas por producto con el CMV congelado al vender.
func (r *AnalyticsRepo) GetProductMargins(ctx context.Context, startDate, endDate time.Time) ([]repository.ProductMarginResult, error) {
	const query = `
	SELECT
	    p.id                  AS product_id,
	    p.name                AS product_name,
	    SUM(l.quantity)       AS units_sold,
	    SUM(l.line_total)     AS gross_revenue,
	    SUM(l.line_cogs)      AS total_cogs
	FROM sales s
	JOIN sale_lines l ON l.sale_id = s.id
	JOIN products   p ON p.id      = l.product_id
	WHERE s.status = 'committed'
	  AND s.created_at BETWEEN $1 AND $2
	GROUP BY p.id, p.name
	ORDER BY units_sold DESC, p.id`

	rows, err := r.pool.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, mapError("product margins", err)
	}
	defer rows.Close()
	results := make([]repository.ProductMarginResult, 0)
	for rows.Next() {
		var m repository.ProductMarginResult
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.UnitsSold, &m.GrossRevenue, &m.TotalCOGS); err != nil {
			return nil, mapError("scan product margin", err)
		}
		results = append(results, m)
	}
	return results, mapError("product margins", rows.Err())
}

// GetStockHealth cuenta insumos activos y críticos y valoriza el inventario a costo promedio.
func (r *AnalyticsRepo) GetStockHealth(ctx context.Context) (repository.StockHealthResult, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COUNT(*) FILTER (WHERE stock_quantity <= reorder_threshold),
	    COALESCE(SUM(stock_quantity * unit_cost), 0)
	FROM ingredients
	WHERE active`
	var res repository.StockHealthResult
	if err := r.pool.QueryRow(ctx, query).Scan(&res.ActiveIngredients, &res.CriticalIngredients, &res.InventoryValue); err != nil {
		return repository.StockHealthResult{}, mapError("stock health", err)
	}
	return res, nil
}

// GetLossAndPurchaseValue valoriza mermas al costo promedio vigente y compras a su costo de entrada.
func (r *AnalyticsRepo) GetLossAndPurchaseValue(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
	SELECT
	    COALESCE(SUM(m.quantity * i.unit_cost) FILTER (WHERE m.kind = 'loss'), 0),
	    COALESCE(SUM(m.quantity * m.unit_cost) FILTER (WHERE m.kind = 'entry'), 0)
	FROM inventory_movements m
	JOIN ingredients i ON i.id = m.ingredient_id
	WHERE m.created_at BETWEEN $1 AND $2`
	var loss, purchases decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, startDate, endDate).Scan(&loss, &purchases); err != nil {
		return decimal.Zero, decimal.Zero, mapError("loss and purchase value", err)
	}
	return loss, purchases, nil
}
