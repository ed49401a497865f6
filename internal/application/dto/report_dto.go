package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitAndLossDTO estado de resultados del período.
type ProfitAndLossDTO struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	Revenue           decimal.Decimal `json:"revenue"`
	COGS              decimal.Decimal `json:"cogs"`
	GrossMargin       decimal.Decimal `json:"gross_margin"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	NetProfit         decimal.Decimal `json:"net_profit"`
}

// ProductMarginDTO margen y ranking de ventas por producto.
type ProductMarginDTO struct {
	Rank        int             `json:"rank"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   decimal.Decimal `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossMargin decimal.Decimal `json:"gross_margin"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
	LowMargin   bool            `json:"low_margin"` // margen % < 40
}

// OperationalKPIsDTO indicadores operacionales: quiebre, rotación y pérdida.
type OperationalKPIsDTO struct {
	StockoutRatePct     decimal.Decimal `json:"stockout_rate_pct"`
	CriticalIngredients int             `json:"critical_ingredients"`
	ActiveIngredients   int             `json:"active_ingredients"`
	InventoryRotation   decimal.Decimal `json:"inventory_rotation"`
	PeriodCOGS          decimal.Decimal `json:"period_cogs"`
	InventoryValue      decimal.Decimal `json:"inventory_value"`
	LossPct             decimal.Decimal `json:"loss_pct"`
	LossValue           decimal.Decimal `json:"loss_value"`
	PurchaseValue       decimal.Decimal `json:"purchase_value"`
}

// ReplenishmentSuggestionDTO sugerencia de compra para un insumo bajo su umbral.
type ReplenishmentSuggestionDTO struct {
	IngredientID       string          `json:"ingredient_id"`
	IngredientName     string          `json:"ingredient_name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderThreshold   decimal.Decimal `json:"reorder_threshold"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // ReorderThreshold * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	OutOfStock         bool            `json:"out_of_stock"`
	Priority           int             `json:"priority"` // 1 = más urgente
}

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD; vacío = hoy
}

// ExpenseResponse gasto operativo registrado.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

// DashboardSummaryDTO resumen del día y del mes en curso.
type DashboardSummaryDTO struct {
	TodaySales    decimal.Decimal    `json:"today_sales"`
	TodayMargin   decimal.Decimal    `json:"today_margin"` // ventas - CMV
	MonthlySales  decimal.Decimal    `json:"monthly_sales"`
	MonthlyMargin decimal.Decimal    `json:"monthly_margin"`
	TopProducts   []ProductMarginDTO `json:"top_products"`
	DateLabel     string             `json:"date_label"` // ej: "Octubre 2026"
}
