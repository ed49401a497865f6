package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementKindEntry      = "entry"      // compra
	MovementKindExit       = "exit"       // consumo por venta
	MovementKindLoss       = "loss"       // merma
	MovementKindAdjustment = "adjustment" // ajuste por conteo físico
)

// Motivos fijos registrados por el libro de insumos.
const (
	ReasonPurchase        = "purchase"
	ReasonSaleConsumption = "sale consumption"
)

// Movement es un registro inmutable de auditoría de cada cambio de stock.
// Quantity es magnitud positiva en entry/exit/loss; en adjustment lleva el signo del ajuste.
// UnitCost solo se informa en entradas (nil en salidas, mermas y ajustes).
type Movement struct {
	ID           string
	IngredientID string
	Kind         string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Reason       string
	Reference    string // ID de la venta en salidas por consumo
	CreatedAt    time.Time
	CreatedBy    string
}

// StockDelta devuelve el efecto con signo del movimiento sobre el stock.
func (m *Movement) StockDelta() decimal.Decimal {
	switch m.Kind {
	case MovementKindExit, MovementKindLoss:
		return m.Quantity.Neg()
	default:
		return m.Quantity
	}
}
