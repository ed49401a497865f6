package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient es un insumo de cocina con su stock y costo promedio ponderado.
// StockQuantity y UnitCost solo los modifica el libro de insumos (LedgerUseCase).
type Ingredient struct {
	ID               string
	Name             string
	Unit             string // kg, lt, un...
	StockQuantity    decimal.Decimal
	UnitCost         decimal.Decimal
	ReorderThreshold decimal.Decimal
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsCritical indica si el stock está en o bajo el umbral de reposición.
func (i *Ingredient) IsCritical() bool {
	return i.StockQuantity.LessThanOrEqual(i.ReorderThreshold)
}
