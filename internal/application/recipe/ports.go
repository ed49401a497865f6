package recipe

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RecipeCostCache guarda el CMV unitario calculado por producto.
// Una falla de la caché nunca impide calcular el costo.
type RecipeCostCache interface {
	Get(ctx context.Context, productID string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, productID string, cost decimal.Decimal, ttl time.Duration) error
	Delete(ctx context.Context, productIDs ...string) error
}
