// Package pricing computes estimate prices. Calculate is pure: it never
// touches storage and it never fails. Malformed numeric input is coerced
// to zero before it gets here, so degenerate input produces a zero-cost
// result rather than an error.
package pricing

import (
	"math"

	"github.com/takumikoubou/mitsumori/internal/estimate"
)

// Consumption tax applied to the final price.
const taxRate = 0.10

// Input holds the estimate-level parameters shared across all lines.
// Negative profit rates are accepted and produce a markdown.
type Input struct {
	LaborDays                 float64
	DailyLaborRate            float64
	MaterialProfitRatePercent float64
	ProjectProfitRatePercent  float64
}

// Breakdown contains the intermediate values of the two-stage calculation.
type Breakdown struct {
	BaseMaterialCost       float64
	CategoryTotals         map[string]float64
	MaterialProfitAmount   float64
	MaterialCostWithProfit float64
	LaborCost              float64
	TotalCost              float64
	ProjectProfitAmount    float64
}

// Totals contains the final prices with and without tax.
type Totals struct {
	FinalPriceNoTax float64
	FinalPrice      float64
}

// Result groups the full pricing output.
type Result struct {
	Breakdown Breakdown
	Totals    Totals
}

// Calculate prices an estimate: material cost with its profit markup, then
// labor, then the project-level markup, then 10% tax rounded to the nearest
// yen (half away from zero). Categories with no lines are omitted from
// CategoryTotals.
func Calculate(items []estimate.LineItem, in Input) Result {
	baseMaterialCost := 0.0
	categoryTotals := make(map[string]float64)
	for _, item := range items {
		cost := item.Cost()
		baseMaterialCost += cost
		categoryTotals[item.Category] += cost
	}

	materialProfitAmount := baseMaterialCost * (in.MaterialProfitRatePercent / 100)
	materialCostWithProfit := baseMaterialCost + materialProfitAmount

	laborCost := in.LaborDays * in.DailyLaborRate
	totalCost := materialCostWithProfit + laborCost

	projectProfitAmount := totalCost * (in.ProjectProfitRatePercent / 100)
	finalPriceNoTax := totalCost + projectProfitAmount
	finalPrice := math.Round(finalPriceNoTax * (1 + taxRate))

	return Result{
		Breakdown: Breakdown{
			BaseMaterialCost:       baseMaterialCost,
			CategoryTotals:         categoryTotals,
			MaterialProfitAmount:   materialProfitAmount,
			MaterialCostWithProfit: materialCostWithProfit,
			LaborCost:              laborCost,
			TotalCost:              totalCost,
			ProjectProfitAmount:    projectProfitAmount,
		},
		Totals: Totals{
			FinalPriceNoTax: finalPriceNoTax,
			FinalPrice:      finalPrice,
		},
	}
}
