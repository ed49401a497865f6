// Package memory implementa los repositorios en memoria. Se usa con STORAGE_DRIVER=memory
// (desarrollo local) y en los tests de casos de uso y handlers.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// DefaultLockTimeout espera máxima por la transacción en curso antes de ErrTransactionConflict.
const DefaultLockTimeout = 3 * time.Second

type state struct {
	ingredients map[string]entity.Ingredient
	products    map[string]entity.Product
	recipes     map[string]map[string]decimal.Decimal // productID -> ingredientID -> cantidad por unidad
	movements   []entity.Movement
	sales       map[string]entity.Sale
	saleLines   map[string][]entity.SaleLine
	expenses    []entity.OperatingExpense
	users       map[string]entity.User // por email en minúsculas
}

func newState() *state {
	return &state{
		ingredients: make(map[string]entity.Ingredient),
		products:    make(map[string]entity.Product),
		recipes:     make(map[string]map[string]decimal.Decimal),
		movements:   make([]entity.Movement, 0, 128),
		sales:       make(map[string]entity.Sale),
		saleLines:   make(map[string][]entity.SaleLine),
		expenses:    make([]entity.OperatingExpense, 0, 16),
		users:       make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		ingredients: maps.Clone(s.ingredients),
		products:    maps.Clone(s.products),
		recipes:     make(map[string]map[string]decimal.Decimal, len(s.recipes)),
		movements:   slices.Clone(s.movements),
		sales:       maps.Clone(s.sales),
		saleLines:   make(map[string][]entity.SaleLine, len(s.saleLines)),
		expenses:    slices.Clone(s.expenses),
		users:       maps.Clone(s.users),
	}
	for k, v := range s.recipes {
		c.recipes[k] = maps.Clone(v)
	}
	for k, v := range s.saleLines {
		c.saleLines[k] = slices.Clone(v)
	}
	return c
}

// Store guarda el estado completo. Las transacciones se serializan: cada una trabaja sobre
// una copia y la publica al confirmar, de modo que un error descarta todos sus cambios.
type Store struct {
	mu          sync.RWMutex
	cur         *state
	txSem       chan struct{}
	lockTimeout time.Duration
}

// New crea un store vacío. lockTimeout <= 0 usa DefaultLockTimeout.
func New(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Store{
		cur:         newState(),
		txSem:       make(chan struct{}, 1),
		lockTimeout: lockTimeout,
	}
}

func (s *Store) acquire(ctx context.Context) error {
	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()
	select {
	case s.txSem <- struct{}{}:
		return nil
	case <-timer.C:
		return domain.ErrTransactionConflict
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) inTx(ctx context.Context, fn func(tx *state) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer func() { <-s.txSem }()

	s.mu.RLock()
	snap := s.cur.clone()
	s.mu.RUnlock()

	if err := fn(snap); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = snap
	s.mu.Unlock()
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	ingredientRepo repository.IngredientRepository,
	movRepo repository.MovementRepository,
) error) error {
	return s.inTx(ctx, func(tx *state) error {
		sc := scope{store: s, tx: tx}
		return fn(&IngredientRepo{sc}, &MovementRepo{sc})
	})
}

// RunSale implementa sales.TxRunner.
func (s *Store) RunSale(ctx context.Context, fn func(
	ingredientRepo repository.IngredientRepository,
	movRepo repository.MovementRepository,
	recipeRepo repository.RecipeRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return s.inTx(ctx, func(tx *state) error {
		sc := scope{store: s, tx: tx}
		return fn(&IngredientRepo{sc}, &MovementRepo{sc}, &RecipeRepo{sc}, &SaleRepo{sc})
	})
}

// Repositorios fuera de transacción.
func (s *Store) Ingredients() *IngredientRepo { return &IngredientRepo{scope{store: s}} }
func (s *Store) Movements() *MovementRepo     { return &MovementRepo{scope{store: s}} }
func (s *Store) Products() *ProductRepo       { return &ProductRepo{scope{store: s}} }
func (s *Store) Recipes() *RecipeRepo         { return &RecipeRepo{scope{store: s}} }
func (s *Store) Sales() *SaleRepo             { return &SaleRepo{scope{store: s}} }
func (s *Store) Expenses() *ExpenseRepo       { return &ExpenseRepo{scope{store: s}} }
func (s *Store) Analytics() *AnalyticsRepo    { return &AnalyticsRepo{scope{store: s}} }
func (s *Store) Users() *UserRepo             { return &UserRepo{scope{store: s}} }

// scope decide si un repositorio opera sobre la copia de una transacción o sobre el estado publicado.
type scope struct {
	store *Store
	tx    *state
}

func (sc scope) read(fn func(st *state)) {
	if sc.tx != nil {
		fn(sc.tx)
		return
	}
	sc.store.mu.RLock()
	defer sc.store.mu.RUnlock()
	fn(sc.store.cur)
}

func (sc scope) write(ctx context.Context, fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	return sc.store.inTx(ctx, fn)
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
