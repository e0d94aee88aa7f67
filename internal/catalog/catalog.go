// Package catalog owns the priced material master: categories of (name,
// spec, price) rows the operator picks estimate lines from. The store keeps
// the working copy in memory and is the single writer of the materialDB key.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/takumikoubou/mitsumori/internal/kvstore"
)

// StorageKey is the kv key holding the serialized catalog.
const StorageKey = "materialDB"

var (
	// ErrInvalidItem marks a rejected add: empty name or negative price.
	ErrInvalidItem = errors.New("invalid catalog item")
	// ErrDuplicateItem marks an add whose (name, spec) pair already exists
	// in the category.
	ErrDuplicateItem = errors.New("duplicate catalog item")
	// ErrUnknownCategory marks an operation against a category outside the
	// configured set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrEditOutOfRange marks a bulk price edit whose index does not match
	// any item in its category.
	ErrEditOutOfRange = errors.New("price edit out of range")
)

// Item is one row of the catalog. ID is the stable selection handle;
// identity within a category is the (Name, Spec) pair.
type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Spec  string  `json:"spec"`
	Price float64 `json:"price"`
}

// Label is the display form used in selection dropdowns.
func (it Item) Label() string {
	if it.Spec == "" {
		return it.Name
	}
	return fmt.Sprintf("%s (%s)", it.Name, it.Spec)
}

// PriceEdit addresses one item by category and position for bulk re-pricing.
type PriceEdit struct {
	Category string
	Index    int
	Price    float64
}

// Store caches the catalog in memory and persists it whole on every
// mutation through the injected backend.
type Store struct {
	kv         kvstore.Store
	categories []string
	items      map[string][]Item
}

// NewStore builds a store over kv for the given category set. An empty set
// falls back to DefaultCategories.
func NewStore(kv kvstore.Store, categories []string) *Store {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}
	return &Store{
		kv:         kv,
		categories: categories,
		items:      make(map[string][]Item),
	}
}

// Load reads the persisted catalog. A missing key is a valid initial state
// and yields the built-in default catalog.
func (s *Store) Load() error {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if !ok {
		s.items = defaultItemsFor(s.categories)
		return nil
	}

	var stored map[string][]Item
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	items := make(map[string][]Item, len(s.categories))
	for _, category := range s.categories {
		rows := stored[category]
		for i := range rows {
			// Records written before ids existed get one on load.
			if rows[i].ID == "" {
				rows[i].ID = uuid.NewString()
			}
		}
		if rows == nil {
			rows = []Item{}
		}
		items[category] = rows
	}
	s.items = items
	return nil
}

func (s *Store) save() error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.kv.Put(StorageKey, raw); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// AddItem validates and appends a new row, then persists the catalog.
func (s *Store) AddItem(category, name, spec string, price float64) (Item, error) {
	name = strings.TrimSpace(name)
	spec = strings.TrimSpace(spec)

	if name == "" {
		return Item{}, fmt.Errorf("%w: 材料名は必須です", ErrInvalidItem)
	}
	if price < 0 {
		return Item{}, fmt.Errorf("%w: 単価は0以上の値を設定してください", ErrInvalidItem)
	}

	rows, ok := s.items[category]
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	for _, existing := range rows {
		if existing.Name == name && existing.Spec == spec {
			return Item{}, fmt.Errorf("%w: %s (%s)", ErrDuplicateItem, name, spec)
		}
	}

	item := Item{ID: uuid.NewString(), Name: name, Spec: spec, Price: price}
	s.items[category] = append(rows, item)

	if err := s.save(); err != nil {
		// Roll back the cached copy so memory matches storage.
		s.items[category] = s.items[category][:len(s.items[category])-1]
		return Item{}, err
	}
	return item, nil
}

// UpdatePrices applies a bulk re-price atomically: every edit is validated
// before any price changes, and the catalog is persisted once.
func (s *Store) UpdatePrices(edits []PriceEdit) error {
	for _, edit := range edits {
		rows, ok := s.items[edit.Category]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, edit.Category)
		}
		if edit.Index < 0 || edit.Index >= len(rows) {
			return fmt.Errorf("%w: %s[%d]", ErrEditOutOfRange, edit.Category, edit.Index)
		}
	}

	previous := make(map[string][]float64, len(edits))
	for _, edit := range edits {
		previous[edit.Category] = nil
	}
	for category := range previous {
		rows := s.items[category]
		prices := make([]float64, len(rows))
		for i, row := range rows {
			prices[i] = row.Price
		}
		previous[category] = prices
	}

	for _, edit := range edits {
		s.items[edit.Category][edit.Index].Price = edit.Price
	}

	if err := s.save(); err != nil {
		for category, prices := range previous {
			for i := range prices {
				s.items[category][i].Price = prices[i]
			}
		}
		return err
	}
	return nil
}

// Categories returns the configured category set in display order.
func (s *Store) Categories() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Items returns the rows of one category in insertion order.
func (s *Store) Items(category string) []Item {
	rows := s.items[category]
	out := make([]Item, len(rows))
	copy(out, rows)
	return out
}

// Find looks an item up by its id within a category.
func (s *Store) Find(category, id string) (Item, bool) {
	for _, item := range s.items[category] {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Resolve matches a saved estimate line back to a catalog row by the
// (name, spec, price) triple it snapshotted. A changed catalog may yield no
// match; callers treat that as an unselected line.
func (s *Store) Resolve(category, name, spec string, price float64) (Item, bool) {
	for _, item := range s.items[category] {
		if item.Name == name && item.Spec == spec && item.Price == price {
			return item, true
		}
	}
	return Item{}, false
}
