package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto de la carta.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// SetRecipeLineRequest body para PUT /api/products/:id/recipe/:ingredientId.
type SetRecipeLineRequest struct {
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// RecipeLineResponse línea de receta con el costo actual del insumo.
type RecipeLineResponse struct {
	IngredientID    string          `json:"ingredient_id"`
	IngredientName  string          `json:"ingredient_name"`
	Unit            string          `json:"unit"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	LineCost        decimal.Decimal `json:"line_cost"` // QuantityPerUnit * UnitCost
}

// RecipeCostResponse CMV unitario de un producto y su margen de contribución.
type RecipeCostResponse struct {
	ProductID          string               `json:"product_id"`
	ProductName        string               `json:"product_name"`
	Price              decimal.Decimal      `json:"price"`
	UnitCost           decimal.Decimal      `json:"unit_cost"`           // CMV por unidad
	ContributionMargin decimal.Decimal      `json:"contribution_margin"` // Price - UnitCost
	MarginPct          decimal.Decimal      `json:"margin_pct"`
	LowMargin          bool                 `json:"low_margin"` // margen < 40% del precio
	Lines              []RecipeLineResponse `json:"lines,omitempty"`
}
