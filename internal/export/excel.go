// Package export renders a saved estimate as an Excel workbook for sending
// to the customer.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/takumikoubou/mitsumori/internal/estimate"
	"github.com/takumikoubou/mitsumori/internal/pricing"
)

const sheet = "Sheet1"

// EstimateWorkbook builds the workbook for one saved estimate: header
// fields, the material lines grouped by category, and the price breakdown
// recomputed from the stored inputs.
func EstimateWorkbook(q estimate.Quote) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	f.SetCellValue(sheet, "A1", "見積番号")
	f.SetCellValue(sheet, "B1", q.Number)
	f.SetCellValue(sheet, "A2", "日付")
	f.SetCellValue(sheet, "B2", q.Date)
	f.SetCellValue(sheet, "A3", "製品名")
	f.SetCellValue(sheet, "B3", q.ProductName)

	f.SetCellValue(sheet, "A5", "カテゴリ")
	f.SetCellValue(sheet, "B5", "材料名")
	f.SetCellValue(sheet, "C5", "規格")
	f.SetCellValue(sheet, "D5", "数量")
	f.SetCellValue(sheet, "E5", "単価")
	f.SetCellValue(sheet, "F5", "金額")

	row := 6
	for _, group := range pricing.CategoryGroups(q.Materials) {
		for _, line := range group.Lines {
			name := line.Name
			if line.IsCustom {
				name = "[カスタム] " + name
			}
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), group.Category)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), name)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), line.Spec)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), line.Quantity)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), line.UnitPrice)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), line.Cost)
			row++
		}
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), group.Category+" 合計")
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), group.Subtotal)
		row++
	}

	result := pricing.Calculate(q.Materials, pricing.Input{
		LaborDays:                 q.LaborDays,
		DailyLaborRate:            q.DailyLaborRate,
		MaterialProfitRatePercent: q.MaterialProfitRatePercent,
		ProjectProfitRatePercent:  q.ProjectProfitRatePercent,
	})

	row++
	summary := []struct {
		label string
		value float64
	}{
		{"材料費（原価）", result.Breakdown.BaseMaterialCost},
		{"材料利益", result.Breakdown.MaterialProfitAmount},
		{"材料費（利益込）", result.Breakdown.MaterialCostWithProfit},
		{"人件費", result.Breakdown.LaborCost},
		{"原価合計", result.Breakdown.TotalCost},
		{"プロジェクト利益", result.Breakdown.ProjectProfitAmount},
		{"見積価格（税別）", q.FinalPriceNoTax},
		{"見積価格（税込）", q.FinalPrice},
	}
	for _, line := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), line.label)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), line.value)
		row++
	}

	return f, nil
}

// WriteEstimate writes the workbook for q to w.
func WriteEstimate(w io.Writer, q estimate.Quote) error {
	f, err := EstimateWorkbook(q)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
