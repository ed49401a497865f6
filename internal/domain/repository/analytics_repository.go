package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductMarginResult resultado crudo del margen por producto en un período.
// Lo produce el almacenamiento; el caso de uso calcula porcentajes y ranking.
type ProductMarginResult struct {
	ProductID    string
	ProductName  string
	UnitsSold    decimal.Decimal
	GrossRevenue decimal.Decimal // Σ line_total
	TotalCOGS    decimal.Decimal // Σ line_cogs (CMV congelado al momento de la venta)
}

// StockHealthResult foto actual del inventario activo.
type StockHealthResult struct {
	ActiveIngredients   int
	CriticalIngredients int             // stock <= umbral de reposición
	InventoryValue      decimal.Decimal // Σ stock * costo_promedio
}

// AnalyticsRepository define las consultas de lectura para reportes.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve ingresos (Σ total de ventas) y CMV (Σ line_cogs) del período.
	GetSalesMetrics(ctx context.Context, startDate, endDate time.Time) (revenue, cogs decimal.Decimal, err error)

	// GetOperatingExpenses suma los gastos operativos del período.
	GetOperatingExpenses(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, error)

	// GetProductMargins agrupa ventas por producto, ordenado por unidades vendidas descendente.
	GetProductMargins(ctx context.Context, startDate, endDate time.Time) ([]ProductMarginResult, error)

	// GetStockHealth cuenta insumos activos, críticos y valoriza el inventario actual.
	GetStockHealth(ctx context.Context) (StockHealthResult, error)

	// GetLossAndPurchaseValue valoriza mermas (a costo promedio actual) y compras (a costo de entrada) del período.
	GetLossAndPurchaseValue(ctx context.Context, startDate, endDate time.Time) (loss, purchases decimal.Decimal, err error)
}
