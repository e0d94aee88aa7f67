package catalog

import "github.com/google/uuid"

// Category names of the default master. The set is configuration; these
// match the materials the shop started from.
const (
	CategoryDecorative = "化粧材"
	CategorySubstrate  = "下地材"
	CategoryHardware   = "金物"
	CategoryOutsourced = "外注費"
)

// DefaultCategories returns the built-in category set in display order.
func DefaultCategories() []string {
	return []string{CategoryDecorative, CategorySubstrate, CategoryHardware, CategoryOutsourced}
}

// defaultItemsFor builds the built-in seed catalog for the given category
// set. Categories outside the default master start empty.
func defaultItemsFor(categories []string) map[string][]Item {
	seed := map[string][]Item{
		CategoryDecorative: {
			{Name: "ポリ合板LP", Spec: "3*6", Price: 5000},
			{Name: "ポリ合板LP", Spec: "4*8", Price: 9500},
			{Name: "ポリ合板BB", Spec: "3*6", Price: 4000},
			{Name: "ポリ合板BB", Spec: "4*8", Price: 8000},
			{Name: "メラミン化粧板K,TS,JC", Spec: "3*6", Price: 6000},
			{Name: "メラミン化粧板K,TS,JC", Spec: "4*8", Price: 11000},
			{Name: "メラミン化粧板SAI,TJ", Spec: "3*6", Price: 6500},
			{Name: "メラミン化粧板SAI,TJ", Spec: "4*8", Price: 12000},
			{Name: "シナ合板", Spec: "3*6", Price: 2500},
			{Name: "シナ合板", Spec: "4*8", Price: 4500},
		},
		CategorySubstrate: {
			{Name: "下地材", Spec: "芯材", Price: 4200},
			{Name: "ラワンベニヤ2.5mm", Spec: "3*6", Price: 900},
			{Name: "ラワンベニヤ2.5mm", Spec: "4*8", Price: 1800},
			{Name: "ラワンランバー15mm", Spec: "3*6", Price: 2300},
			{Name: "ラワンランバー15mm", Spec: "4*8", Price: 4000},
			{Name: "ラワンランバー18mm", Spec: "3*6", Price: 2700},
			{Name: "ラワンランバー18mm", Spec: "4*8", Price: 4200},
			{Name: "ラワンランバー24mm", Spec: "3*6", Price: 3500},
			{Name: "ラワンランバー24mm", Spec: "4*8", Price: 6200},
		},
		CategoryHardware: {
			{Name: "スライドレール", Spec: "H-350", Price: 1500},
			{Name: "丁番（ペア）", Spec: "HH-01", Price: 800},
		},
		CategoryOutsourced: {
			{Name: "塗装費用 (㎡)", Spec: "PAINT-M", Price: 3000},
			{Name: "特殊加工 (一式)", Spec: "SPECIAL", Price: 15000},
		},
	}

	items := make(map[string][]Item, len(categories))
	for _, category := range categories {
		rows := make([]Item, len(seed[category]))
		copy(rows, seed[category])
		for i := range rows {
			rows[i].ID = uuid.NewString()
		}
		items[category] = rows
	}
	return items
}

// DefaultItems returns the built-in seed catalog for the default category
// set, with fresh item ids.
func DefaultItems() map[string][]Item {
	return defaultItemsFor(DefaultCategories())
}
