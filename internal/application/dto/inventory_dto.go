package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest body para POST /api/ingredients. Stock y costo inician en 0.
type CreateIngredientRequest struct {
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
}

// IngredientResponse salida de un insumo.
type IngredientResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	StockQuantity    decimal.Decimal `json:"stock_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	Critical         bool            `json:"critical"`
	Active           bool            `json:"active"`
}

// StockResponse stock actual y costo promedio ponderado de un insumo.
type StockResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// PurchaseRequest body para POST /api/ingredients/:id/purchases.
type PurchaseRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// PurchaseResponse nuevo costo promedio tras la compra.
type PurchaseResponse struct {
	IngredientID string          `json:"ingredient_id"`
	NewUnitCost  decimal.Decimal `json:"new_unit_cost"`
}

// LossRequest body para POST /api/ingredients/:id/losses.
type LossRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"`
}

// AdjustmentRequest body para POST /api/ingredients/:id/adjustments. Delta con signo.
type AdjustmentRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason"`
}

// MovementResponse registro de auditoría de inventario.
type MovementResponse struct {
	ID           string           `json:"id"`
	IngredientID string           `json:"ingredient_id"`
	Kind         string           `json:"kind"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason       string           `json:"reason"`
	Reference    string           `json:"reference,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	CreatedBy    string           `json:"created_by,omitempty"`
}

// MovementPage página del historial de un insumo, más reciente primero.
type MovementPage struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}
