package inventory

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de insumos. Los bloqueos de fila que no se obtienen dentro
// del lock timeout terminan en domain.ErrTransactionConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ingredientRepo repository.IngredientRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// CostObserver recibe aviso cuando cambia el costo promedio de un insumo (p. ej. para invalidar caché de recetas).
type CostObserver interface {
	IngredientCostChanged(ctx context.Context, ingredientID string)
}
