package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible de la carta.
// Su costo no se almacena: se deriva de la receta y del costo promedio de los insumos.
type Product struct {
	ID        string
	Name      string
	Category  string
	Price     decimal.Decimal // precio de venta por defecto
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
