// Package history stores prompt history, partitioned by register and
// by kind (regular prompts vs. searches keep separate histories).
package history

import "sync"

// Partition separates histories that share a register name.
type Partition uint8

const (
	// PartitionDefault holds regular prompt history.
	PartitionDefault Partition = iota
	// PartitionSearch holds search prompt history.
	PartitionSearch
)

// String returns the partition name.
func (p Partition) String() string {
	if p == PartitionSearch {
		return "search"
	}
	return "default"
}

type slot struct {
	partition Partition
	register  rune
}

// Store holds history entries. Entries within one slot are unique;
// re-adding an entry moves it to the most recent position.
type Store struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[slot][]string
}

// NewStore creates a store capping each slot at maxEntries.
func NewStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &Store{
		maxEntries: maxEntries,
		entries:    make(map[slot][]string),
	}
}

// Add records an entry as the most recent in its slot. Empty entries
// are ignored.
func (s *Store) Add(p Partition, register rune, entry string) {
	if entry == "" || register == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := slot{partition: p, register: register}
	items := s.entries[k]
	for i, it := range items {
		if it == entry {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}
	items = append(items, entry)
	if len(items) > s.maxEntries {
		items = items[len(items)-s.maxEntries:]
	}
	s.entries[k] = items
}

// Entries returns a copy of the slot's entries, oldest first.
func (s *Store) Entries(p Partition, register rune) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.entries[slot{partition: p, register: register}]
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// Clear removes every entry in a slot.
func (s *Store) Clear(p Partition, register rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, slot{partition: p, register: register})
}

// Len returns the number of entries in a slot.
func (s *Store) Len(p Partition, register rune) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries[slot{partition: p, register: register}])
}
