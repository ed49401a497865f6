package recipe

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

// CatalogUseCase administra productos de la carta y sus recetas, y calcula el CMV unitario.
type CatalogUseCase struct {
	productRepo    repository.ProductRepository
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	cache          RecipeCostCache
	ttl            time.Duration
	log            *logger.Logger
}

// NewCatalogUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	cache RecipeCostCache,
	ttl time.Duration,
	log *logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:    productRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		cache:          cache,
		ttl:            ttl,
		log:            log.Component("catalogo"),
	}
}

// CreateProduct da de alta un producto activo.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	price := inventory.Normalize(in.Price)
	if name == "" || price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  strings.TrimSpace(in.Category),
		Price:     price,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProduct devuelve el producto o ErrUnknownEntity.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// ListProducts lista la carta.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, onlyActive bool) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// RecipeLinesFor devuelve la receta del producto. Un producto sin receta devuelve lista vacía.
func (uc *CatalogUseCase) RecipeLinesFor(ctx context.Context, productID string) ([]*entity.RecipeLine, error) {
	if _, err := uc.activeProduct(ctx, productID); err != nil {
		return nil, err
	}
	return uc.recipeRepo.ListByProduct(ctx, productID)
}

// SetRecipeLine crea o reemplaza la cantidad de un insumo en la receta del producto.
func (uc *CatalogUseCase) SetRecipeLine(ctx context.Context, productID, ingredientID string, quantityPerUnit decimal.Decimal) error {
	quantityPerUnit = inventory.Normalize(quantityPerUnit)
	if !quantityPerUnit.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if _, err := uc.activeProduct(ctx, productID); err != nil {
		return err
	}
	ing, err := uc.ingredientRepo.GetByID(ctx, ingredientID)
	if err != nil {
		return err
	}
	if ing == nil || !ing.Active {
		return domain.ErrUnknownEntity
	}
	line := &entity.RecipeLine{ProductID: productID, IngredientID: ingredientID, QuantityPerUnit: quantityPerUnit}
	if err := uc.recipeRepo.Upsert(ctx, line); err != nil {
		return err
	}
	uc.invalidate(ctx, productID)
	return nil
}

// RemoveRecipeLine quita un insumo de la receta.
func (uc *CatalogUseCase) RemoveRecipeLine(ctx context.Context, productID, ingredientID string) error {
	if err := uc.recipeRepo.Delete(ctx, productID, ingredientID); err != nil {
		return err
	}
	uc.invalidate(ctx, productID)
	return nil
}

// RecipeCost devuelve Σ cantidad_por_unidad * costo_promedio del insumo (CMV unitario).
// Refleja el costo promedio vigente al momento de la consulta.
func (uc *CatalogUseCase) RecipeCost(ctx context.Context, productID string) (decimal.Decimal, error) {
	if _, err := uc.activeProduct(ctx, productID); err != nil {
		return decimal.Zero, err
	}
	if uc.cache != nil {
		if cost, ok, err := uc.cache.Get(ctx, productID); err != nil {
			uc.log.Warn().Err(err).Str("product_id", productID).Msg("caché de costo de receta no disponible")
		} else if ok {
			return cost, nil
		}
	}
	lines, err := uc.recipeRepo.ListByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	costs := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		ing, err := uc.ingredientRepo.GetByID(ctx, l.IngredientID)
		if err != nil {
			return decimal.Zero, err
		}
		if ing != nil {
			costs[l.IngredientID] = ing.UnitCost
		}
	}
	cost := inventory.RecipeUnitCost(lines, costs)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, productID, cost, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("product_id", productID).Msg("no se pudo guardar costo de receta en caché")
		}
	}
	return cost, nil
}

// RecipeCostBreakdown detalla el costo por insumo y el margen de contribución frente al precio de carta.
func (uc *CatalogUseCase) RecipeCostBreakdown(ctx context.Context, productID string) (*dto.RecipeCostResponse, error) {
	p, err := uc.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.recipeRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.RecipeCostResponse{
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Lines:       make([]dto.RecipeLineResponse, 0, len(lines)),
	}
	total := decimal.Zero
	for _, l := range lines {
		ing, err := uc.ingredientRepo.GetByID(ctx, l.IngredientID)
		if err != nil {
			return nil, err
		}
		row := dto.RecipeLineResponse{IngredientID: l.IngredientID, QuantityPerUnit: l.QuantityPerUnit}
		if ing != nil {
			row.IngredientName = ing.Name
			row.Unit = ing.Unit
			row.UnitCost = ing.UnitCost
			row.LineCost = l.QuantityPerUnit.Mul(ing.UnitCost)
		}
		total = total.Add(row.LineCost)
		out.Lines = append(out.Lines, row)
	}
	out.UnitCost = total
	out.ContributionMargin = p.Price.Sub(total)
	out.MarginPct = inventory.MarginPct(p.Price, total)
	out.LowMargin = out.MarginPct.LessThan(inventory.LowMarginPct)
	return out, nil
}

// IngredientCostChanged implementa inventory.CostObserver: invalida el CMV cacheado
// de los productos que usan el insumo.
func (uc *CatalogUseCase) IngredientCostChanged(ctx context.Context, ingredientID string) {
	if uc.cache == nil {
		return
	}
	products, err := uc.recipeRepo.ListProductsByIngredient(ctx, ingredientID)
	if err != nil {
		uc.log.Warn().Err(err).Str("ingredient_id", ingredientID).Msg("no se pudieron listar recetas afectadas")
		return
	}
	uc.invalidate(ctx, products...)
}

func (uc *CatalogUseCase) invalidate(ctx context.Context, productIDs ...string) {
	if uc.cache == nil || len(productIDs) == 0 {
		return
	}
	if err := uc.cache.Delete(ctx, productIDs...); err != nil {
		uc.log.Warn().Err(err).Strs("product_ids", productIDs).Msg("no se pudo invalidar caché de costo de receta")
	}
}

func (uc *CatalogUseCase) getProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUnknownEntity
	}
	return p, nil
}

// activeProduct es getProduct para las operaciones de receta y costo: un producto inactivo
// se trata como inexistente.
func (uc *CatalogUseCase) activeProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, domain.ErrUnknownEntity
	}
	return p, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}
