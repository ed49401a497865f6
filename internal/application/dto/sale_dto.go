package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea del carrito. UnitPrice en cero usa el precio de carta.
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CommitSaleRequest body para POST /api/sales.
type CommitSaleRequest struct {
	Channel string            `json:"channel"`
	Lines   []SaleLineRequest `json:"lines"`
}

// SaleLineResponse línea confirmada con su CMV.
type SaleLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LineTotal decimal.Decimal `json:"line_total"`
	LineCOGS  decimal.Decimal `json:"line_cogs"`
}

// IngredientConsumption consumo total de un insumo en la venta.
type IngredientConsumption struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// SaleReceipt comprobante de una venta confirmada.
type SaleReceipt struct {
	SaleID      string                  `json:"sale_id"`
	Channel     string                  `json:"channel"`
	Status      string                  `json:"status"`
	Total       decimal.Decimal         `json:"total"`
	TotalCOGS   decimal.Decimal         `json:"total_cogs"`
	Lines       []SaleLineResponse      `json:"lines"`
	Consumption []IngredientConsumption `json:"consumption,omitempty"`
	CommittedAt time.Time               `json:"committed_at"`
}
