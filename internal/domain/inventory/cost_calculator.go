package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// StorageScale decimales con que se persisten cantidades y costos (NUMERIC(18,6)).
const StorageScale = 6

// Normalize redondea al número de decimales persistido. Las validaciones de positividad
// se hacen sobre el valor normalizado, así lo que se valida es lo que se guarda.
func Normalize(v decimal.Decimal) decimal.Decimal {
	return v.Round(StorageScale)
}

// PurchaseAverageCost implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si el stock resultante es 0 se usa el costo de la entrada.
func PurchaseAverageCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// RecipeUnitCost suma cantidad_por_unidad * costo_promedio sobre las líneas de la receta.
// Una receta vacía cuesta 0. costs se indexa por IngredientID; un insumo ausente aporta 0.
func RecipeUnitCost(lines []*entity.RecipeLine, costs map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.QuantityPerUnit.Mul(costs[l.IngredientID]))
	}
	return total
}

// AggregateConsumption acumula el consumo total por insumo de todas las líneas de la venta.
// Dos productos que comparten un insumo suman sus requerimientos antes de validar stock.
// Los totales se normalizan a StorageScale; un total que redondea a cero se descarta.
// Devuelve también los IDs de insumo ordenados, que es el orden de bloqueo de filas.
func AggregateConsumption(lines []entity.SaleLine, recipes map[string][]*entity.RecipeLine) (map[string]decimal.Decimal, []string) {
	required := make(map[string]decimal.Decimal)
	for _, line := range lines {
		for _, r := range recipes[line.ProductID] {
			required[r.IngredientID] = required[r.IngredientID].Add(r.QuantityPerUnit.Mul(line.Quantity))
		}
	}
	ids := make([]string, 0, len(required))
	for id, qty := range required {
		qty = Normalize(qty)
		if qty.IsZero() {
			delete(required, id)
			continue
		}
		required[id] = qty
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return required, ids
}

// LowMarginPct umbral bajo el cual un producto se marca con margen bajo.
var LowMarginPct = decimal.NewFromInt(40)

// MarginPct devuelve (ingreso - costo) / ingreso * 100 con 2 decimales; 0 si no hay ingreso.
func MarginPct(revenue, cost decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}
