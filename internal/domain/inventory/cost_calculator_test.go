package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Arroz: 10 kg a $2 + compra de 5 kg a $3 → $2,33/kg.
func TestPurchaseAverageCost_EjemploArroz(t *testing.T) {
	got := inventory.PurchaseAverageCost(d("10"), d("2"), d("5"), d("3"))
	assert.True(t, got.Round(2).Equal(d("2.33")), "costo promedio esperado 2.33, obtenido %s", got)
}

func TestPurchaseAverageCost_SinStockPrevioUsaCostoEntrada(t *testing.T) {
	got := inventory.PurchaseAverageCost(decimal.Zero, d("7"), d("4"), d("3.5"))
	assert.True(t, got.Equal(d("3.5")))
}

func TestPurchaseAverageCost_CantidadResultanteCeroUsaCostoEntrada(t *testing.T) {
	got := inventory.PurchaseAverageCost(decimal.Zero, decimal.Zero, decimal.Zero, d("9"))
	assert.True(t, got.Equal(d("9")), "no debe dividir por cero")
}

func TestRecipeUnitCost(t *testing.T) {
	lines := []*entity.RecipeLine{
		{ProductID: "roll", IngredientID: "arroz", QuantityPerUnit: d("0.2")},
		{ProductID: "roll", IngredientID: "salmon", QuantityPerUnit: d("0.1")},
	}
	costs := map[string]decimal.Decimal{"arroz": d("2"), "salmon": d("15")}

	got := inventory.RecipeUnitCost(lines, costs)
	assert.True(t, got.Equal(d("1.9")), "0.2*2 + 0.1*15 = 1.9, obtenido %s", got)
}

func TestRecipeUnitCost_RecetaVaciaEsCero(t *testing.T) {
	assert.True(t, inventory.RecipeUnitCost(nil, nil).IsZero())
}

func TestAggregateConsumption_SumaInsumoCompartido(t *testing.T) {
	recipes := map[string][]*entity.RecipeLine{
		"roll":   {{ProductID: "roll", IngredientID: "arroz", QuantityPerUnit: d("0.3")}, {ProductID: "roll", IngredientID: "nori", QuantityPerUnit: d("1")}},
		"nigiri": {{ProductID: "nigiri", IngredientID: "arroz", QuantityPerUnit: d("0.1")}},
	}
	lines := []entity.SaleLine{
		{ProductID: "roll", Quantity: d("2")},
		{ProductID: "nigiri", Quantity: d("5")},
		{ProductID: "bebida", Quantity: d("1")},
	}

	required, order := inventory.AggregateConsumption(lines, recipes)

	assert.Equal(t, []string{"arroz", "nori"}, order, "IDs ordenados para bloqueo determinista")
	assert.True(t, required["arroz"].Equal(d("1.1")), "0.3*2 + 0.1*5 = 1.1, obtenido %s", required["arroz"])
	assert.True(t, required["nori"].Equal(d("2")))
}

func TestAggregateConsumption_DescartaTotalesQueRedondeanACero(t *testing.T) {
	recipes := map[string][]*entity.RecipeLine{
		"te": {
			{ProductID: "te", IngredientID: "azucar", QuantityPerUnit: d("0.0000001")},
			{ProductID: "te", IngredientID: "hebras", QuantityPerUnit: d("0.0123456789")},
		},
	}
	lines := []entity.SaleLine{{ProductID: "te", Quantity: d("2")}}

	required, order := inventory.AggregateConsumption(lines, recipes)

	assert.Equal(t, []string{"hebras"}, order)
	assert.NotContains(t, required, "azucar")
	assert.Equal(t, "0.024691", required["hebras"].String())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "1.234568", inventory.Normalize(d("1.2345675")).String())
	assert.True(t, inventory.Normalize(d("0.0000004")).IsZero())
	assert.True(t, inventory.Normalize(d("-0.0000004")).IsZero())
	assert.Equal(t, "-2.5", inventory.Normalize(d("-2.5")).String())
}

func TestMarginPct(t *testing.T) {
	assert.Equal(t, "62", inventory.MarginPct(d("5"), d("1.9")).String())
	assert.True(t, inventory.MarginPct(d("0"), d("1")).IsZero(), "sin ingreso el margen es 0")
	assert.True(t, inventory.MarginPct(d("2"), d("3")).LessThan(inventory.LowMarginPct))
}
