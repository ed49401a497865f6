package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// MovementRepository es el registro append-only de movimientos de inventario.
// No expone Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	ListByIngredient(ctx context.Context, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
