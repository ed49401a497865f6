package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// MovementRepo implementa repository.MovementRepository (append-only).
type MovementRepo struct{ scope }

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	return r.write(ctx, func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

// ListByIngredient devuelve los movimientos más recientes primero.
func (r *MovementRepo) ListByIngredient(_ context.Context, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0)
	r.read(func(st *state) {
		skipped := 0
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.IngredientID != ingredientID {
				continue
			}
			if from != nil && m.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && m.CreatedAt.After(*to) {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				return
			}
			out = append(out, &m)
		}
	})
	return out, nil
}
