package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye repos de inventario, recetas y ventas.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		ingredientRepo repository.IngredientRepository,
		movRepo repository.MovementRepository,
		recipeRepo repository.RecipeRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ConsumptionUseCase integra ventas con el libro de insumos.
// ApplyConsumptionInTx descuenta el consumo usando los repositorios del caller (misma transacción).
// Si retorna error (ej: stock insuficiente), el caller debe hacer rollback.
type ConsumptionUseCase interface {
	ApplyConsumptionInTx(
		ctx context.Context,
		ingredientRepo repository.IngredientRepository,
		movRepo repository.MovementRepository,
		ingredientID string,
		quantity decimal.Decimal,
		saleID, userID string,
		now time.Time,
	) error
}

// ReceiptLine línea de venta enriquecida con el nombre del producto para el comprobante.
type ReceiptLine struct {
	entity.SaleLine
	ProductName string
}

// ReceiptPDFGenerator genera el comprobante PDF de una venta confirmada.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, lines []ReceiptLine) ([]byte, error)
}
