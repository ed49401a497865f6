package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ scope }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.write(ctx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) List(_ context.Context, onlyActive bool) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	r.read(func(st *state) {
		for _, p := range st.products {
			if onlyActive && !p.Active {
				continue
			}
			out = append(out, &p)
		}
	})
	slices.SortFunc(out, func(a, b *entity.Product) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// RecipeRepo implementa repository.RecipeRepository.
type RecipeRepo struct{ scope }

// ListByProduct devuelve las líneas ordenadas por IngredientID.
func (r *RecipeRepo) ListByProduct(_ context.Context, productID string) ([]*entity.RecipeLine, error) {
	out := make([]*entity.RecipeLine, 0)
	r.read(func(st *state) {
		for ingID, qty := range st.recipes[productID] {
			out = append(out, &entity.RecipeLine{ProductID: productID, IngredientID: ingID, QuantityPerUnit: qty})
		}
	})
	slices.SortFunc(out, func(a, b *entity.RecipeLine) int { return strings.Compare(a.IngredientID, b.IngredientID) })
	return out, nil
}

func (r *RecipeRepo) ListProductsByIngredient(_ context.Context, ingredientID string) ([]string, error) {
	out := make([]string, 0)
	r.read(func(st *state) {
		for productID, lines := range st.recipes {
			if _, ok := lines[ingredientID]; ok {
				out = append(out, productID)
			}
		}
	})
	slices.Sort(out)
	return out, nil
}

func (r *RecipeRepo) Upsert(ctx context.Context, line *entity.RecipeLine) error {
	return r.write(ctx, func(st *state) error {
		lines, ok := st.recipes[line.ProductID]
		if !ok {
			lines = make(map[string]decimal.Decimal)
			st.recipes[line.ProductID] = lines
		}
		lines[line.IngredientID] = line.QuantityPerUnit
		return nil
	})
}

func (r *RecipeRepo) Delete(ctx context.Context, productID, ingredientID string) error {
	return r.write(ctx, func(st *state) error {
		lines := st.recipes[productID]
		if _, ok := lines[ingredientID]; !ok {
			return domain.ErrUnknownEntity
		}
		delete(lines, ingredientID)
		if len(lines) == 0 {
			delete(st.recipes, productID)
		}
		return nil
	})
}
