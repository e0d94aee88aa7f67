package pricing

import "github.com/takumikoubou/mitsumori/internal/estimate"

// GroupedLine is one row of the display breakdown.
type GroupedLine struct {
	Name      string
	Spec      string
	IsCustom  bool
	Quantity  float64
	UnitPrice float64
	Cost      float64
}

// CategoryGroup is the per-category breakdown: its lines and their subtotal.
type CategoryGroup struct {
	Category string
	Subtotal float64
	Lines    []GroupedLine
}

// CategoryGroups groups line items by category for display, in order of
// first appearance. Categories without lines do not appear.
func CategoryGroups(items []estimate.LineItem) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, CategoryGroup{Category: item.Category})
		}
		cost := item.Cost()
		groups[i].Subtotal += cost
		groups[i].Lines = append(groups[i].Lines, GroupedLine{
			Name:      item.Name,
			Spec:      item.Spec,
			IsCustom:  item.IsCustom,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Cost:      cost,
		})
	}
	return groups
}
