package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

const ingredientColumns = `id, name, unit, stock_quantity, unit_cost, reorder_threshold, active, created_at, updated_at`

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		ing.ID, ing.Name, ing.Unit, ing.StockQuantity, ing.UnitCost,
		ing.ReorderThreshold, ing.Active, ing.CreatedAt, ing.UpdatedAt,
	)
	return mapError("create ingredient", err)
}

func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	return r.getOne(ctx, "get ingredient", query, id)
}

// GetForUpdate obtiene el insumo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *IngredientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, "get ingredient for update", query, id)
}

func (r *IngredientRepo) UpdateStock(ctx context.Context, id string, quantity, unitCost decimal.Decimal) error {
	query := `
		UPDATE ingredients
		SET stock_quantity = $2, unit_cost = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity, unitCost)
	if err != nil {
		return mapError("update ingredient stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnknownEntity
	}
	return nil
}

func (r *IngredientRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`
	return r.list(ctx, "list ingredients", query)
}

// ListBelowReorder insumos activos con stock en o bajo el umbral de reposición.
func (r *IngredientRepo) ListBelowReorder(ctx context.Context) ([]*entity.Ingredient, error) {
	query := `
		SELECT ` + ingredientColumns + ` FROM ingredients
		WHERE active AND stock_quantity <= reorder_threshold
		ORDER BY name`
	return r.list(ctx, "list ingredients below reorder", query)
}

func (r *IngredientRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Ingredient, error) {
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return ing, nil
}

func (r *IngredientRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		list = append(list, ing)
	}
	return list, mapError(op, rows.Err())
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	err := row.Scan(
		&ing.ID, &ing.Name, &ing.Unit, &ing.StockQuantity, &ing.UnitCost,
		&ing.ReorderThreshold, &ing.Active, &ing.CreatedAt, &ing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}
