package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// IngredientRepository define el puerto para consultar/actualizar insumos.
// Usado dentro de transacciones para garantizar consistencia del stock.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	// GetByID devuelve (nil, nil) si el insumo no existe.
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error)
	// UpdateStock fija stock y costo promedio. Solo lo invoca el libro de insumos.
	UpdateStock(ctx context.Context, id string, quantity, unitCost decimal.Decimal) error
	List(ctx context.Context, onlyActive bool) ([]*entity.Ingredient, error)
	ListBelowReorder(ctx context.Context) ([]*entity.Ingredient, error)
}
