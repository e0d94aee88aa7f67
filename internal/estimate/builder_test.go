package estimate

import (
	"testing"

	"github.com/takumikoubou/mitsumori/internal/catalog"
	"github.com/takumikoubou/mitsumori/internal/kvstore"
)

func newTestCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	store := catalog.NewStore(kvstore.NewMemory(), nil)
	if err := store.Load(); err != nil {
		t.Fatalf("catalog load returned error: %v", err)
	}
	return store
}

func TestAddFromCatalogSnapshotsItem(t *testing.T) {
	cat := newTestCatalog(t)
	builder := NewBuilder()

	item := cat.Items(catalog.CategoryHardware)[0]
	line := builder.AddFromCatalog(catalog.CategoryHardware, item)

	if line.ID == "" || line.CatalogItemID != item.ID {
		t.Fatalf("unexpected line identity: %+v", line)
	}
	if line.Name != item.Name || line.Spec != item.Spec || line.UnitPrice != item.Price {
		t.Fatalf("line did not snapshot the item: %+v", line)
	}
	if line.Quantity != 1 {
		t.Fatalf("default quantity = %v, want 1", line.Quantity)
	}
	if line.IsCustom {
		t.Fatal("catalog-backed line flagged as custom")
	}
}

func TestAddCustomUsesFixedSpecLabel(t *testing.T) {
	builder := NewBuilder()

	line := builder.AddCustom(catalog.CategoryOutsourced)

	if !line.IsCustom || line.Spec != CustomSpecLabel {
		t.Fatalf("unexpected custom line: %+v", line)
	}
	if line.Name != "" || line.UnitPrice != 0 {
		t.Fatalf("custom line must start blank: %+v", line)
	}
}

func TestRemoveAndMutateByLineID(t *testing.T) {
	cat := newTestCatalog(t)
	builder := NewBuilder()

	first := builder.AddFromCatalog(catalog.CategoryHardware, cat.Items(catalog.CategoryHardware)[0])
	second := builder.AddCustom(catalog.CategoryHardware)

	if !builder.SetQuantity(first.ID, 3) {
		t.Fatal("SetQuantity reported missing line")
	}
	if !builder.SetUnitPrice(second.ID, 750) {
		t.Fatal("SetUnitPrice reported missing line")
	}
	if !builder.SetName(second.ID, "特注金具") {
		t.Fatal("SetName reported missing line")
	}
	if builder.SetQuantity("missing", 1) {
		t.Fatal("SetQuantity on unknown id must report false")
	}

	if !builder.Remove(first.ID) {
		t.Fatal("Remove reported missing line")
	}
	if builder.Remove(first.ID) {
		t.Fatal("second Remove of same id must report false")
	}

	lines := builder.Lines()
	if len(lines) != 1 || lines[0].Name != "特注金具" || lines[0].UnitPrice != 750 {
		t.Fatalf("unexpected remaining lines: %+v", lines)
	}
}

func TestItemsDefaultsBlankCustomNames(t *testing.T) {
	builder := NewBuilder()
	builder.AddCustom(catalog.CategorySubstrate)

	items := builder.Items()
	if len(items) != 1 || items[0].Name != DefaultCustomName {
		t.Fatalf("blank custom name not defaulted: %+v", items)
	}

	// The session line itself stays blank for further editing.
	if builder.Lines()[0].Name != "" {
		t.Fatal("Items must not mutate the session line")
	}
}

func TestRestoreResolvesCatalogLines(t *testing.T) {
	cat := newTestCatalog(t)
	builder := NewBuilder()

	item := cat.Items(catalog.CategoryDecorative)[2]
	quote := Quote{
		Materials: []LineItem{
			{Category: catalog.CategoryDecorative, Name: item.Name, Spec: item.Spec, Quantity: 4, UnitPrice: item.Price},
			{Category: catalog.CategoryOutsourced, Name: "搬入協力", Spec: CustomSpecLabel, Quantity: 1, UnitPrice: 12000, IsCustom: true},
		},
	}

	builder.Restore(quote, cat)

	lines := builder.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 restored lines, got %d", len(lines))
	}
	if lines[0].CatalogItemID != item.ID {
		t.Fatalf("catalog line not re-resolved: %+v", lines[0])
	}
	if lines[0].Quantity != 4 || lines[0].UnitPrice != item.Price {
		t.Fatalf("restored line lost its snapshot: %+v", lines[0])
	}
	if lines[1].CatalogItemID != "" || !lines[1].IsCustom {
		t.Fatalf("custom line must not resolve to the catalog: %+v", lines[1])
	}
}

func TestRestoreSilentlyDropsSelectionWhenCatalogChanged(t *testing.T) {
	cat := newTestCatalog(t)
	builder := NewBuilder()

	item := cat.Items(catalog.CategoryHardware)[0]
	quote := Quote{
		Materials: []LineItem{
			// Snapshot price differs from the current catalog price.
			{Category: catalog.CategoryHardware, Name: item.Name, Spec: item.Spec, Quantity: 2, UnitPrice: item.Price + 100},
		},
	}

	builder.Restore(quote, cat)

	line := builder.Lines()[0]
	if line.CatalogItemID != "" {
		t.Fatalf("stale snapshot must not re-select: %+v", line)
	}
	if line.UnitPrice != item.Price+100 {
		t.Fatalf("restored line must keep its saved price: %+v", line)
	}
}
