package sales

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// DefaultChannel canal usado cuando la venta no informa uno.
const DefaultChannel = "salon"

// CommitSaleUseCase confirma una venta completa: valida stock agregado de todas las líneas,
// descuenta los insumos, congela el CMV y persiste la venta en una sola transacción.
type CommitSaleUseCase struct {
	txRunner    TxRunner
	consumption ConsumptionUseCase
	productRepo repository.ProductRepository
	maxRetries  int
	log         *logger.Logger
}

// NewCommitSaleUseCase construye el caso de uso. maxRetries es la cantidad de reintentos
// ante ErrTransactionConflict (0 = sin reintentos).
func NewCommitSaleUseCase(
	txRunner TxRunner,
	consumption ConsumptionUseCase,
	productRepo repository.ProductRepository,
	maxRetries int,
	log *logger.Logger,
) *CommitSaleUseCase {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &CommitSaleUseCase{
		txRunner:    txRunner,
		consumption: consumption,
		productRepo: productRepo,
		maxRetries:  maxRetries,
		log:         log.Component("ventas"),
	}
}

// CommitSale arma el carrito a partir del request y lo confirma.
// Solo ErrTransactionConflict se reintenta; cualquier otro error se devuelve de inmediato.
func (uc *CommitSaleUseCase) CommitSale(ctx context.Context, userID string, in dto.CommitSaleRequest) (*dto.SaleReceipt, error) {
	draft, err := uc.buildDraft(ctx, in)
	if err != nil {
		return nil, err
	}

	var receipt *dto.SaleReceipt
	attempt := 0
	op := func() error {
		attempt++
		sale := copyDraft(draft)
		r, err := uc.Commit(ctx, sale, userID)
		if err == nil {
			receipt = r
			return nil
		}
		if errors.Is(err, domain.ErrTransactionConflict) {
			uc.log.Warn().Int("attempt", attempt).Msg("conflicto de concurrencia al confirmar venta")
			return err
		}
		return backoff.Permanent(err)
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 50 * time.Millisecond
	eb.MaxInterval = 500 * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(uc.maxRetries)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return receipt, nil
}

// Commit confirma una venta en estado draft. Al terminar la venta queda committed o aborted;
// si aborta, el stock, los movimientos y las ventas no cambian.
func (uc *CommitSaleUseCase) Commit(ctx context.Context, sale *entity.Sale, userID string) (*dto.SaleReceipt, error) {
	if len(sale.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := sale.BeginValidation(); err != nil {
		return nil, err
	}
	sale.ID = uuid.New().String()
	sale.CreatedBy = userID
	now := time.Now()

	var required map[string]decimal.Decimal
	var order []string

	err := uc.txRunner.RunSale(ctx, func(
		ingredientRepo repository.IngredientRepository,
		movRepo repository.MovementRepository,
		recipeRepo repository.RecipeRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Recetas de cada producto del carrito
		recipes := make(map[string][]*entity.RecipeLine)
		for _, l := range sale.Lines {
			if _, ok := recipes[l.ProductID]; ok {
				continue
			}
			lines, err := recipeRepo.ListByProduct(ctx, l.ProductID)
			if err != nil {
				return err
			}
			recipes[l.ProductID] = lines
		}

		// 2) Consumo agregado por insumo y bloqueo de filas en orden ascendente de ID
		required, order = inventory.AggregateConsumption(sale.Lines, recipes)
		costs := make(map[string]decimal.Decimal, len(order))
		for _, id := range order {
			ing, err := ingredientRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if ing == nil || !ing.Active {
				return domain.ErrUnknownEntity
			}
			if ing.StockQuantity.LessThan(required[id]) {
				return &domain.InsufficientStockError{
					IngredientID: id,
					Required:     required[id],
					Available:    ing.StockQuantity,
				}
			}
			costs[id] = ing.UnitCost
		}

		// 3) CMV congelado con el costo promedio vigente bajo bloqueo
		sale.TotalCOGS = decimal.Zero
		for i := range sale.Lines {
			l := &sale.Lines[i]
			l.ID = uuid.New().String()
			l.SaleID = sale.ID
			l.UnitCost = inventory.RecipeUnitCost(recipes[l.ProductID], costs)
			l.LineCOGS = l.UnitCost.Mul(l.Quantity)
			sale.TotalCOGS = sale.TotalCOGS.Add(l.LineCOGS)
		}

		// 4) Venta y líneas
		header := *sale
		header.Status = entity.SaleStatusCommitted
		header.CreatedAt = now
		if err := saleRepo.Create(ctx, &header); err != nil {
			return err
		}
		for i := range sale.Lines {
			if err := saleRepo.CreateLine(ctx, &sale.Lines[i]); err != nil {
				return err
			}
		}

		// 5) Salidas de inventario con referencia a la venta
		for _, id := range order {
			if err := uc.consumption.ApplyConsumptionInTx(ctx, ingredientRepo, movRepo, id, required[id], sale.ID, userID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = sale.MarkAborted()
		uc.log.Info().Err(err).Str("sale_id", sale.ID).Msg("venta abortada")
		return nil, err
	}
	if err := sale.MarkCommitted(now); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("total", sale.Total.String()).
		Str("total_cogs", sale.TotalCOGS.String()).
		Int("lines", len(sale.Lines)).
		Msg("venta confirmada")

	receipt := toReceipt(sale)
	receipt.Consumption = make([]dto.IngredientConsumption, 0, len(order))
	for _, id := range order {
		receipt.Consumption = append(receipt.Consumption, dto.IngredientConsumption{IngredientID: id, Quantity: required[id]})
	}
	return receipt, nil
}

// buildDraft valida las líneas (fuera de la tx, solo lectura) y arma el carrito.
func (uc *CommitSaleUseCase) buildDraft(ctx context.Context, in dto.CommitSaleRequest) (*entity.Sale, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	channel := strings.TrimSpace(in.Channel)
	if channel == "" {
		channel = DefaultChannel
	}
	sale := entity.NewDraftSale(channel)
	for _, item := range in.Lines {
		item.Quantity = inventory.Normalize(item.Quantity)
		item.UnitPrice = inventory.Normalize(item.UnitPrice)
		if item.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if !item.Quantity.IsPositive() {
			return nil, domain.ErrInvalidQuantity
		}
		if item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, domain.ErrUnknownEntity
		}
		price := item.UnitPrice
		if price.IsZero() {
			price = product.Price
		}
		if err := sale.AddLine(item.ProductID, item.Quantity, price); err != nil {
			return nil, err
		}
	}
	return sale, nil
}

func copyDraft(s *entity.Sale) *entity.Sale {
	c := *s
	c.Lines = slices.Clone(s.Lines)
	return &c
}

func toReceipt(sale *entity.Sale) *dto.SaleReceipt {
	out := &dto.SaleReceipt{
		SaleID:      sale.ID,
		Channel:     sale.Channel,
		Status:      sale.Status,
		Total:       sale.Total,
		TotalCOGS:   sale.TotalCOGS,
		Lines:       make([]dto.SaleLineResponse, 0, len(sale.Lines)),
		CommittedAt: sale.CreatedAt,
	}
	for _, l := range sale.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			UnitCost:  l.UnitCost,
			LineTotal: l.LineTotal,
			LineCOGS:  l.LineCOGS,
		})
	}
	return out
}
