package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

const testDatabaseEnv = "RESTAURANTE_TEST_DATABASE_URL"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// openTestPool conecta a la base de pruebas y aplica las migraciones.
// Sin RESTAURANTE_TEST_DATABASE_URL el test se omite.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv(testDatabaseEnv)
	if url == "" {
		t.Skipf("%s no definido; se omite la integración con PostgreSQL", testDatabaseEnv)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool, logger.Nop()))
	return pool
}

type pgEnv struct {
	ledger *inventory.LedgerUseCase
	commit *sales.CommitSaleUseCase
	rice   string
	bowl   string
}

// newPgEnv replica el ejemplo del arroz: 10 kg @ 2 + 5 kg @ 3 y un bowl de 1 kg.
func newPgEnv(t *testing.T, pool *pgxpool.Pool) *pgEnv {
	t.Helper()
	ctx := context.Background()
	tx := postgres.NewTxRunner(pool, 2*time.Second)
	ingredients := postgres.NewIngredientRepository(pool)
	products := postgres.NewProductRepository(pool)
	ledger := inventory.NewLedgerUseCase(tx, ingredients, postgres.NewMovementRepository(pool), logger.Nop())
	catalog := recipe.NewCatalogUseCase(products, postgres.NewRecipeRepository(pool), ingredients, nil, 0, logger.Nop())

	rice, err := ledger.CreateIngredient(ctx, "Arroz "+uuid.NewString()[:8], "kg", d("2"))
	require.NoError(t, err)
	_, err = ledger.RecordPurchase(ctx, rice.ID, d("10"), d("2"), "tester")
	require.NoError(t, err)
	_, err = ledger.RecordPurchase(ctx, rice.ID, d("5"), d("3"), "tester")
	require.NoError(t, err)
	bowl, err := catalog.CreateProduct(ctx, dto.CreateProductRequest{Name: "Bowl", Price: d("6")})
	require.NoError(t, err)
	require.NoError(t, catalog.SetRecipeLine(ctx, bowl.ID, rice.ID, d("1")))

	return &pgEnv{
		ledger: ledger,
		commit: sales.NewCommitSaleUseCase(tx, ledger, products, 3, logger.Nop()),
		rice:   rice.ID,
		bowl:   bowl.ID,
	}
}

func (e *pgEnv) sell(qty string) (*dto.SaleReceipt, error) {
	return e.commit.CommitSale(context.Background(), "tester", dto.CommitSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: e.bowl, Quantity: d(qty)}},
	})
}

func TestPostgres_EjemploDelArroz(t *testing.T) {
	pool := openTestPool(t)
	e := newPgEnv(t, pool)
	ctx := context.Background()

	qty, cost, err := e.ledger.CurrentStock(ctx, e.rice)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("15")))
	assert.Equal(t, "2.33", cost.Round(2).String())

	receipt, err := e.sell("12")
	require.NoError(t, err)
	assert.Equal(t, "28", receipt.TotalCOGS.Round(0).String())

	_, err = e.sell("4")
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "la segunda venta debe abortar por stock")
	assert.True(t, stockErr.Required.Equal(d("4")))
	assert.True(t, stockErr.Available.Equal(d("3")))

	qty, _, err = e.ledger.CurrentStock(ctx, e.rice)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("3")), "la venta abortada no descuenta")

	movs, err := e.ledger.ListMovements(ctx, e.rice, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, movs, 3, "dos compras y una salida; la venta abortada no deja movimientos")
}

func TestPostgres_VentasConcurrentesNoSobregiran(t *testing.T) {
	pool := openTestPool(t)
	e := newPgEnv(t, pool)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		committed decimal.Decimal
	)
	// 6 ventas de 4 kg compiten por 15 kg: como máximo 3 pueden confirmarse.
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.sell("4"); err == nil {
				mu.Lock()
				committed = committed.Add(d("4"))
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	qty, _, err := e.ledger.CurrentStock(context.Background(), e.rice)
	require.NoError(t, err)
	assert.True(t, committed.Equal(d("12")))
	assert.True(t, qty.Equal(d("3")))
}

func TestPostgres_IdMalFormadoEsDesconocido(t *testing.T) {
	pool := openTestPool(t)
	e := newPgEnv(t, pool)

	_, _, err := e.ledger.CurrentStock(context.Background(), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
}
