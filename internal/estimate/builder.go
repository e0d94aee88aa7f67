package estimate

import (
	"github.com/google/uuid"

	"github.com/takumikoubou/mitsumori/internal/catalog"
)

// Line is a builder row: a LineItem plus the transient identifiers the
// session needs. CatalogItemID is empty for custom lines and for restored
// lines whose catalog row no longer exists.
type Line struct {
	ID            string
	CatalogItemID string
	LineItem
}

// Builder holds the estimate being composed. It is session state only:
// nothing here is persisted until the quote is saved.
type Builder struct {
	lines []Line
}

// NewBuilder returns an empty session.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddFromCatalog appends a line for a catalog item, copying name, spec and
// price at selection time. Quantity defaults to 1.
func (b *Builder) AddFromCatalog(category string, item catalog.Item) Line {
	line := Line{
		ID:            uuid.NewString(),
		CatalogItemID: item.ID,
		LineItem: LineItem{
			Category:  category,
			Name:      item.Name,
			Spec:      item.Spec,
			Quantity:  1,
			UnitPrice: item.Price,
		},
	}
	b.lines = append(b.lines, line)
	return line
}

// AddCustom appends a blank free-form line with the fixed spec label.
func (b *Builder) AddCustom(category string) Line {
	line := Line{
		ID: uuid.NewString(),
		LineItem: LineItem{
			Category: category,
			Spec:     CustomSpecLabel,
			Quantity: 1,
			IsCustom: true,
		},
	}
	b.lines = append(b.lines, line)
	return line
}

// Remove deletes the line with the given id and reports whether it existed.
func (b *Builder) Remove(id string) bool {
	for i, line := range b.lines {
		if line.ID == id {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity updates one line's quantity.
func (b *Builder) SetQuantity(id string, quantity float64) bool {
	line := b.find(id)
	if line == nil {
		return false
	}
	line.Quantity = quantity
	return true
}

// SetUnitPrice updates one line's unit price.
func (b *Builder) SetUnitPrice(id string, unitPrice float64) bool {
	line := b.find(id)
	if line == nil {
		return false
	}
	line.UnitPrice = unitPrice
	return true
}

// SetName updates one line's name. Meaningful for custom lines; the UI
// keeps catalog-backed names read-only.
func (b *Builder) SetName(id string, name string) bool {
	line := b.find(id)
	if line == nil {
		return false
	}
	line.Name = name
	return true
}

func (b *Builder) find(id string) *Line {
	for i := range b.lines {
		if b.lines[i].ID == id {
			return &b.lines[i]
		}
	}
	return nil
}

// Reset discards the session.
func (b *Builder) Reset() {
	b.lines = nil
}

// Lines returns every session line in insertion order.
func (b *Builder) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// LinesFor returns the session lines of one category.
func (b *Builder) LinesFor(category string) []Line {
	var out []Line
	for _, line := range b.lines {
		if line.Category == category {
			out = append(out, line)
		}
	}
	return out
}

// Items returns the LineItems the pricing engine and save path consume.
// Blank custom names fall back to the default label, as the original form
// did on save.
func (b *Builder) Items() []LineItem {
	items := make([]LineItem, 0, len(b.lines))
	for _, line := range b.lines {
		item := line.LineItem
		if item.IsCustom && item.Name == "" {
			item.Name = DefaultCustomName
		}
		items = append(items, item)
	}
	return items
}

// Restore replaces the session with the materials of a saved quote.
// Catalog-backed lines re-resolve to their catalog row by the snapshotted
// (name, spec, price) triple; if the catalog has changed since the save the
// line keeps its snapshot but loses its selection. That silent miss is an
// accepted limitation of snapshot semantics.
func (b *Builder) Restore(q Quote, cat *catalog.Store) {
	lines := make([]Line, 0, len(q.Materials))
	for _, item := range q.Materials {
		line := Line{ID: uuid.NewString(), LineItem: item}
		if !item.IsCustom {
			if resolved, ok := cat.Resolve(item.Category, item.Name, item.Spec, item.UnitPrice); ok {
				line.CatalogItemID = resolved.ID
			}
		}
		lines = append(lines, line)
	}
	b.lines = lines
}
