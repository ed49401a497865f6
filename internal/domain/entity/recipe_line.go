package entity

import "github.com/shopspring/decimal"

// RecipeLine es una línea de la receta (bill of materials) de un producto.
// Única por par (ProductID, IngredientID).
type RecipeLine struct {
	ProductID       string
	IngredientID    string
	QuantityPerUnit decimal.Decimal
}
