package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// IngredientRepo implementa repository.IngredientRepository.
type IngredientRepo struct{ scope }

func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	return r.write(ctx, func(st *state) error {
		if _, ok := st.ingredients[ing.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, existing := range st.ingredients {
			if strings.EqualFold(existing.Name, ing.Name) {
				return domain.ErrDuplicate
			}
		}
		st.ingredients[ing.ID] = *ing
		return nil
	})
}

func (r *IngredientRepo) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	r.read(func(st *state) {
		if ing, ok := st.ingredients[id]; ok {
			out = &ing
		}
	})
	return out, nil
}

// GetForUpdate dentro de una transacción equivale a GetByID: la transacción ya es exclusiva.
func (r *IngredientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error) {
	return r.GetByID(ctx, id)
}

func (r *IngredientRepo) UpdateStock(ctx context.Context, id string, quantity, unitCost decimal.Decimal) error {
	return r.write(ctx, func(st *state) error {
		ing, ok := st.ingredients[id]
		if !ok {
			return domain.ErrUnknownEntity
		}
		ing.StockQuantity = quantity
		ing.UnitCost = unitCost
		ing.UpdatedAt = time.Now()
		st.ingredients[id] = ing
		return nil
	})
}

func (r *IngredientRepo) List(_ context.Context, onlyActive bool) ([]*entity.Ingredient, error) {
	return r.filter(func(ing *entity.Ingredient) bool { return !onlyActive || ing.Active }), nil
}

func (r *IngredientRepo) ListBelowReorder(_ context.Context) ([]*entity.Ingredient, error) {
	return r.filter(func(ing *entity.Ingredient) bool { return ing.Active && ing.IsCritical() }), nil
}

func (r *IngredientRepo) filter(keep func(*entity.Ingredient) bool) []*entity.Ingredient {
	out := make([]*entity.Ingredient, 0)
	r.read(func(st *state) {
		for _, ing := range st.ingredients {
			if keep(&ing) {
				out = append(out, &ing)
			}
		}
	})
	slices.SortFunc(out, func(a, b *entity.Ingredient) int { return strings.Compare(a.Name, b.Name) })
	return out
}
