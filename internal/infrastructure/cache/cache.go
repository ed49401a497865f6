// Package cache implementa recipe.RecipeCostCache.
package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// NoopRecipeCostCache se usa cuando REDIS_ADDR no está configurado.
type NoopRecipeCostCache struct{}

func (NoopRecipeCostCache) Get(_ context.Context, _ string) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

func (NoopRecipeCostCache) Set(_ context.Context, _ string, _ decimal.Decimal, _ time.Duration) error {
	return nil
}

func (NoopRecipeCostCache) Delete(_ context.Context, _ ...string) error {
	return nil
}
