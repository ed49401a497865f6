package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx). Solo inserta y lee.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, ingredient_id, kind, quantity, unit_cost, reason, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.IngredientID, m.Kind, m.Quantity, m.UnitCost,
		m.Reason, nullable(m.Reference), m.CreatedAt, nullable(m.CreatedBy),
	)
	return mapError("create inventory movement", err)
}

// ListByIngredient lista movimientos de un insumo en un rango de fechas, más reciente primero.
func (r *MovementRepo) ListByIngredient(ctx context.Context, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, ingredient_id, kind, quantity, unit_cost, reason, reference, created_at, created_by
		FROM inventory_movements WHERE ingredient_id = $1`
	args := []any{ingredientID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list movements", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var reference, createdBy *string
		if err := rows.Scan(&m.ID, &m.IngredientID, &m.Kind, &m.Quantity, &m.UnitCost,
			&m.Reason, &reference, &m.CreatedAt, &createdBy); err != nil {
			return nil, mapError("scan movement", err)
		}
		if reference != nil {
			m.Reference = *reference
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, mapError("list movements", rows.Err())
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
