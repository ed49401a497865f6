package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// CostScale decimales con que se guarda el costo promedio ponderado.
const CostScale = inventory.StorageScale

// Ventana del historial de movimientos.
const (
	MovementsPageDefault = 100
	MovementsPageMax     = 500
)

// LedgerUseCase es el libro de insumos: único punto que modifica stock y costo promedio.
// Cada operación bloquea la fila del insumo (SELECT FOR UPDATE) y registra su movimiento
// en la misma transacción.
type LedgerUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
	movementRepo   repository.MovementRepository
	observer       CostObserver
	log            *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	ingredientRepo repository.IngredientRepository,
	movementRepo repository.MovementRepository,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:       txRunner,
		ingredientRepo: ingredientRepo,
		movementRepo:   movementRepo,
		log:            log.Component("ledger"),
	}
}

// SetCostObserver registra quién debe enterarse de cambios de costo promedio.
func (uc *LedgerUseCase) SetCostObserver(o CostObserver) {
	uc.observer = o
}

// CreateIngredient da de alta un insumo con stock y costo en 0.
func (uc *LedgerUseCase) CreateIngredient(ctx context.Context, name, unit string, reorderThreshold decimal.Decimal) (*entity.Ingredient, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	reorderThreshold = inventory.Normalize(reorderThreshold)
	if name == "" || unit == "" || reorderThreshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	ing := &entity.Ingredient{
		ID:               uuid.New().String(),
		Name:             name,
		Unit:             unit,
		StockQuantity:    decimal.Zero,
		UnitCost:         decimal.Zero,
		ReorderThreshold: reorderThreshold,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.ingredientRepo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// GetIngredient devuelve el insumo o ErrUnknownEntity.
func (uc *LedgerUseCase) GetIngredient(ctx context.Context, id string) (*entity.Ingredient, error) {
	ing, err := uc.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrUnknownEntity
	}
	return ing, nil
}

// ListIngredients lista insumos; onlyActive filtra los dados de baja.
func (uc *LedgerUseCase) ListIngredients(ctx context.Context, onlyActive bool) ([]*entity.Ingredient, error) {
	return uc.ingredientRepo.List(ctx, onlyActive)
}

// CurrentStock devuelve la cantidad en stock y el costo promedio ponderado del insumo.
func (uc *LedgerUseCase) CurrentStock(ctx context.Context, ingredientID string) (decimal.Decimal, decimal.Decimal, error) {
	ing, err := uc.GetIngredient(ctx, ingredientID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return ing.StockQuantity, ing.UnitCost, nil
}

// RecordPurchase registra una compra: suma stock, recalcula el costo promedio y guarda una entrada.
// Devuelve el nuevo costo promedio.
func (uc *LedgerUseCase) RecordPurchase(ctx context.Context, ingredientID string, quantity, unitCost decimal.Decimal, userID string) (decimal.Decimal, error) {
	quantity, unitCost = inventory.Normalize(quantity), inventory.Normalize(unitCost)
	if !quantity.IsPositive() || !unitCost.IsPositive() {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	var newCost decimal.Decimal
	err := uc.txRunner.Run(ctx, func(ingredientRepo repository.IngredientRepository, movRepo repository.MovementRepository) error {
		var err error
		newCost, err = uc.ApplyPurchaseInTx(ctx, ingredientRepo, movRepo, ingredientID, quantity, unitCost, userID, time.Now())
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	uc.log.Info().
		Str("ingredient_id", ingredientID).
		Str("quantity", quantity.String()).
		Str("unit_cost", unitCost.String()).
		Str("new_average_cost", newCost.String()).
		Msg("compra registrada")
	if uc.observer != nil {
		uc.observer.IngredientCostChanged(ctx, ingredientID)
	}
	return newCost, nil
}

// ApplyPurchaseInTx aplica una compra con los repositorios de la transacción del caller.
func (uc *LedgerUseCase) ApplyPurchaseInTx(
	ctx context.Context,
	ingredientRepo repository.IngredientRepository,
	movRepo repository.MovementRepository,
	ingredientID string,
	quantity, unitCost decimal.Decimal,
	userID string,
	now time.Time,
) (decimal.Decimal, error) {
	ing, err := lockActive(ctx, ingredientRepo, ingredientID)
	if err != nil {
		return decimal.Zero, err
	}
	newCost := inventory.PurchaseAverageCost(ing.StockQuantity, ing.UnitCost, quantity, unitCost).Round(CostScale)
	if err := ingredientRepo.UpdateStock(ctx, ingredientID, ing.StockQuantity.Add(quantity), newCost); err != nil {
		return decimal.Zero, err
	}
	cost := unitCost
	mov := &entity.Movement{
		ID:           uuid.New().String(),
		IngredientID: ingredientID,
		Kind:         entity.MovementKindEntry,
		Quantity:     quantity,
		UnitCost:     &cost,
		Reason:       entity.ReasonPurchase,
		CreatedAt:    now,
		CreatedBy:    userID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return decimal.Zero, err
	}
	return newCost, nil
}

// RecordLoss registra una merma: descuenta stock sin tocar el costo promedio.
func (uc *LedgerUseCase) RecordLoss(ctx context.Context, ingredientID string, quantity decimal.Decimal, reason, userID string) error {
	quantity = inventory.Normalize(quantity)
	if !quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(ingredientRepo repository.IngredientRepository, movRepo repository.MovementRepository) error {
		ing, err := lockActive(ctx, ingredientRepo, ingredientID)
		if err != nil {
			return err
		}
		return decrement(ctx, ingredientRepo, movRepo, ing, quantity, entity.MovementKindLoss, reason, "", userID, time.Now())
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("ingredient_id", ingredientID).
		Str("quantity", quantity.String()).
		Str("reason", reason).
		Msg("merma registrada")
	return nil
}

// ApplyConsumptionInTx descuenta el consumo de una venta dentro de la transacción del caller.
// Implementa sales.ConsumptionUseCase. saleID queda como referencia del movimiento.
func (uc *LedgerUseCase) ApplyConsumptionInTx(
	ctx context.Context,
	ingredientRepo repository.IngredientRepository,
	movRepo repository.MovementRepository,
	ingredientID string,
	quantity decimal.Decimal,
	saleID, userID string,
	now time.Time,
) error {
	if !quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	ing, err := lockActive(ctx, ingredientRepo, ingredientID)
	if err != nil {
		return err
	}
	return decrement(ctx, ingredientRepo, movRepo, ing, quantity, entity.MovementKindExit, entity.ReasonSaleConsumption, saleID, userID, now)
}

// RecordAdjustment corrige el stock tras un conteo físico. delta lleva signo; el costo no cambia.
func (uc *LedgerUseCase) RecordAdjustment(ctx context.Context, ingredientID string, delta decimal.Decimal, reason, userID string) error {
	delta = inventory.Normalize(delta)
	if delta.IsZero() {
		return domain.ErrInvalidQuantity
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(ingredientRepo repository.IngredientRepository, movRepo repository.MovementRepository) error {
		ing, err := lockActive(ctx, ingredientRepo, ingredientID)
		if err != nil {
			return err
		}
		newQty := ing.StockQuantity.Add(delta)
		if newQty.IsNegative() {
			return &domain.InsufficientStockError{
				IngredientID: ingredientID,
				Required:     delta.Neg(),
				Available:    ing.StockQuantity,
			}
		}
		if err := ingredientRepo.UpdateStock(ctx, ingredientID, newQty, ing.UnitCost); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.Movement{
			ID:           uuid.New().String(),
			IngredientID: ingredientID,
			Kind:         entity.MovementKindAdjustment,
			Quantity:     delta,
			Reason:       reason,
			CreatedAt:    time.Now(),
			CreatedBy:    userID,
		})
	})
}

// ListMovements devuelve el historial de movimientos del insumo, más reciente primero.
// page se acota a MovementsPageMax registros (MovementsPageDefault si no viene).
func (uc *LedgerUseCase) ListMovements(ctx context.Context, ingredientID string, from, to *time.Time, page dto.PageRequest) ([]*entity.Movement, error) {
	if _, err := uc.GetIngredient(ctx, ingredientID); err != nil {
		return nil, err
	}
	page.Clamp(MovementsPageDefault, MovementsPageMax)
	return uc.movementRepo.ListByIngredient(ctx, ingredientID, from, to, page.Limit, page.Offset)
}

func lockActive(ctx context.Context, ingredientRepo repository.IngredientRepository, id string) (*entity.Ingredient, error) {
	ing, err := ingredientRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil || !ing.Active {
		return nil, domain.ErrUnknownEntity
	}
	return ing, nil
}

// decrement verifica stock suficiente, descuenta y guarda el movimiento de salida o merma.
func decrement(
	ctx context.Context,
	ingredientRepo repository.IngredientRepository,
	movRepo repository.MovementRepository,
	ing *entity.Ingredient,
	quantity decimal.Decimal,
	kind, reason, reference, userID string,
	now time.Time,
) error {
	if ing.StockQuantity.LessThan(quantity) {
		return &domain.InsufficientStockError{
			IngredientID: ing.ID,
			Required:     quantity,
			Available:    ing.StockQuantity,
		}
	}
	if err := ingredientRepo.UpdateStock(ctx, ing.ID, ing.StockQuantity.Sub(quantity), ing.UnitCost); err != nil {
		return err
	}
	return movRepo.Create(ctx, &entity.Movement{
		ID:           uuid.New().String(),
		IngredientID: ing.ID,
		Kind:         kind,
		Quantity:     quantity,
		Reason:       reason,
		Reference:    reference,
		CreatedAt:    now,
		CreatedBy:    userID,
	})
}
