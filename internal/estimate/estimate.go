// Package estimate holds the quote domain types and the in-memory builder
// for the estimate the operator is currently composing.
package estimate

// Spec label carried by free-form lines, and the name they fall back to
// when the operator leaves it blank.
const (
	CustomSpecLabel   = "カスタム"
	DefaultCustomName = "カスタム材料"
)

// LineItem is one material row of an estimate. Catalog-backed lines
// snapshot name/spec/unit price at selection time; custom lines are
// free-form and never validated against the catalog.
type LineItem struct {
	Category  string  `json:"category"`
	Name      string  `json:"name"`
	Spec      string  `json:"spec"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	IsCustom  bool    `json:"isCustom"`
}

// Cost is the line total.
func (li LineItem) Cost() float64 {
	return li.Quantity * li.UnitPrice
}

// Quote is a saved estimate: the inputs, the resulting prices and the
// material snapshot. Immutable once stored, except whole-record deletion.
type Quote struct {
	ID                        string     `json:"id"`
	Date                      string     `json:"date"`
	Number                    string     `json:"number"`
	ProductName               string     `json:"productName"`
	LaborDays                 float64    `json:"laborDays"`
	DailyLaborRate            float64    `json:"dailyLaborRate"`
	MaterialProfitRatePercent float64    `json:"materialProfitRatePercent"`
	ProjectProfitRatePercent  float64    `json:"projectProfitRatePercent"`
	FinalPrice                float64    `json:"finalPrice"`
	FinalPriceNoTax           float64    `json:"finalPriceNoTax"`
	Materials                 []LineItem `json:"materials"`
}
