// Package watchlist holds the per-session mutable set of instruments under
// monitoring. Stores are passed explicitly into the resolver caller and the
// dashboard assembler; there is no ambient global list.
package watchlist

import (
	"sync"

	"github.com/kkws0615/STOCKup/models"
)

// Store maps canonical symbols to display names, preserving insertion order.
// The symbol (code plus segment suffix) is the dedup key, never the bare code.
type Store struct {
	mu     sync.Mutex
	names  map[string]string
	order  []string
	pinned string // most recently added symbol, consumed by the next assembly
}

// NewStore creates an empty watchlist.
func NewStore() *Store {
	return &Store{names: make(map[string]string)}
}

// Add inserts an entry and marks it as most recently added. Adding a symbol
// that is already present is a no-op reported as added=false, not an error.
func (s *Store) Add(entry models.Entry) (added bool) {
	symbol := entry.Instrument.Symbol()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.names[symbol]; exists {
		return false
	}
	s.names[symbol] = entry.Name
	s.order = append(s.order, symbol)
	s.pinned = symbol
	return true
}

// Contains reports whether a symbol is on the list.
func (s *Store) Contains(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.names[symbol]
	return ok
}

// Remove drops a symbol. Removing an absent symbol is a no-op.
func (s *Store) Remove(symbol string) (removed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(symbol)
}

// RemoveAll drops a batch of symbols and returns how many were present.
// Used by the assembler to prune entries that returned no history.
func (s *Store) RemoveAll(symbols []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, symbol := range symbols {
		if s.removeLocked(symbol) {
			removed++
		}
	}
	return removed
}

func (s *Store) removeLocked(symbol string) bool {
	if _, ok := s.names[symbol]; !ok {
		return false
	}
	delete(s.names, symbol)
	for i, sym := range s.order {
		if sym == symbol {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.pinned == symbol {
		s.pinned = ""
	}
	return true
}

// Entries returns the list in insertion order.
func (s *Store) Entries() []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.Entry, 0, len(s.order))
	for _, symbol := range s.order {
		entries = append(entries, models.Entry{
			Instrument: models.ParseSymbol(symbol),
			Name:       s.names[symbol],
		})
	}
	return entries
}

// Symbols returns the canonical symbols in insertion order.
func (s *Store) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// ConsumePin returns the most recently added symbol and clears it, so the
// pin-to-top override applies to exactly one assembly run.
func (s *Store) ConsumePin() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	pinned := s.pinned
	s.pinned = ""
	return pinned
}
