package repository

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// RecipeRepository define el puerto del catálogo de recetas.
type RecipeRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLine, error)
	// ListProductsByIngredient devuelve los IDs de productos cuya receta usa el insumo.
	ListProductsByIngredient(ctx context.Context, ingredientID string) ([]string, error)
	// Upsert crea o reemplaza la cantidad del par (producto, insumo).
	Upsert(ctx context.Context, line *entity.RecipeLine) error
	Delete(ctx context.Context, productID, ingredientID string) error
}
