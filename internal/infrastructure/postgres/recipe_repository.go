package postgres

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas (product_id, ingredient_id) → cantidad por unidad.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

func (r *RecipeRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLine, error) {
	query := `
		SELECT product_id, ingredient_id, quantity_per_unit
		FROM recipe_lines WHERE product_id = $1
		ORDER BY ingredient_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, mapError("list recipe", err)
	}
	defer rows.Close()
	list := make([]*entity.RecipeLine, 0)
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ProductID, &l.IngredientID, &l.QuantityPerUnit); err != nil {
			return nil, mapError("scan recipe line", err)
		}
		list = append(list, &l)
	}
	return list, mapError("list recipe", rows.Err())
}

func (r *RecipeRepo) ListProductsByIngredient(ctx context.Context, ingredientID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT product_id FROM recipe_lines WHERE ingredient_id = $1 ORDER BY product_id`, ingredientID)
	if err != nil {
		return nil, mapError("list products by ingredient", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapError("scan product id", err)
		}
		ids = append(ids, id)
	}
	return ids, mapError("list products by ingredient", rows.Err())
}

func (r *RecipeRepo) Upsert(ctx context.Context, l *entity.RecipeLine) error {
	query := `
		INSERT INTO recipe_lines (product_id, ingredient_id, quantity_per_unit)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, ingredient_id)
		DO UPDATE SET quantity_per_unit = EXCLUDED.quantity_per_unit`
	_, err := r.q.Exec(ctx, query, l.ProductID, l.IngredientID, l.QuantityPerUnit)
	return mapError("upsert recipe line", err)
}

func (r *RecipeRepo) Delete(ctx context.Context, productID, ingredientID string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM recipe_lines WHERE product_id = $1 AND ingredient_id = $2`, productID, ingredientID)
	if err != nil {
		return mapError("delete recipe line", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnknownEntity
	}
	return nil
}
