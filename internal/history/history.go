// Package history owns the saved estimates. The list is persisted whole on
// every mutation under the estimatesHistory key; records are immutable once
// appended, except whole-record deletion.
package history

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/takumikoubou/mitsumori/internal/estimate"
	"github.com/takumikoubou/mitsumori/internal/kvstore"
)

// StorageKey is the kv key holding the serialized history list.
const StorageKey = "estimatesHistory"

const (
	idDateLayout      = "20060102"
	displayDateLayout = "2006/01/02"
)

// Store caches the history in memory and is its single writer.
type Store struct {
	kv     kvstore.Store
	quotes []estimate.Quote
	now    func() time.Time
}

// NewStore builds a store over kv. A nil clock means time.Now; tests inject
// a fixed one to pin ids and numbering.
func NewStore(kv kvstore.Store, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{kv: kv, now: now}
}

// Load reads the persisted history. A missing key is an empty history.
func (s *Store) Load() error {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if !ok {
		s.quotes = []estimate.Quote{}
		return nil
	}

	var quotes []estimate.Quote
	if err := json.Unmarshal(raw, &quotes); err != nil {
		return fmt.Errorf("decode history: %w", err)
	}
	s.quotes = quotes
	return nil
}

func (s *Store) save() error {
	raw, err := json.Marshal(s.quotes)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Put(StorageKey, raw); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Append assigns the quote its id, date and display number, persists the
// full list and returns the stored record. The id carries the calendar-day
// prefix the numbering counts plus a nanosecond timestamp for uniqueness.
func (s *Store) Append(q estimate.Quote) (estimate.Quote, error) {
	now := s.now()

	q.ID = now.Format(idDateLayout) + strconv.FormatInt(now.UnixNano(), 10)
	q.Date = now.Format(displayDateLayout)
	q.Number = s.NextNumber(now)

	s.quotes = append(s.quotes, q)
	if err := s.save(); err != nil {
		s.quotes = s.quotes[:len(s.quotes)-1]
		return estimate.Quote{}, err
	}
	return q, nil
}

// Delete removes the record with the given id and persists the remainder.
// An unknown id is a benign no-op: the caller's list may be stale.
func (s *Store) Delete(id string) error {
	for i, q := range s.quotes {
		if q.ID == id {
			removed := q
			s.quotes = append(s.quotes[:i], s.quotes[i+1:]...)
			if err := s.save(); err != nil {
				rest := append([]estimate.Quote{}, s.quotes[:i]...)
				rest = append(rest, removed)
				s.quotes = append(rest, s.quotes[i:]...)
				return err
			}
			return nil
		}
	}
	return nil
}

// FindByID returns the stored quote with the given id.
func (s *Store) FindByID(id string) (estimate.Quote, bool) {
	for _, q := range s.quotes {
		if q.ID == id {
			return q, true
		}
	}
	return estimate.Quote{}, false
}

// All returns the history in insertion order.
func (s *Store) All() []estimate.Quote {
	out := make([]estimate.Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// NewestFirst returns the history in display order.
func (s *Store) NewestFirst() []estimate.Quote {
	out := make([]estimate.Quote, len(s.quotes))
	for i, q := range s.quotes {
		out[len(s.quotes)-1-i] = q
	}
	return out
}

// NextNumber returns the display number the next save on the given day
// would receive: YYYYMMDD-NNN where NNN counts that day's saved records
// plus one. Repeated calls without an intervening save return the same
// number; it is only finalized by Append.
func (s *Store) NextNumber(now time.Time) string {
	prefix := now.Format(idDateLayout)

	count := 0
	for _, q := range s.quotes {
		if strings.HasPrefix(q.ID, prefix) {
			count++
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, count+1)
}
