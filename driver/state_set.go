package driver

import (
	"github.com/nihei9/earlook/grammar"
	"github.com/nihei9/earlook/grammar/symbol"
)

// stateSet is the set of items valid at one input position. It remembers every item ever added in insertion order,
// and additionally keeps the items not processed yet as a worklist. Popping an item removes it from the worklist
// only, so the membership of a state set never shrinks.
type stateSet struct {
	items   []grammar.Item
	members map[grammar.Item]struct{}
	pending []grammar.Item
}

func newStateSet() *stateSet {
	return &stateSet{
		members: map[grammar.Item]struct{}{},
	}
}

// add is idempotent. It returns true only when the item is new.
func (s *stateSet) add(item grammar.Item) bool {
	if _, ok := s.members[item]; ok {
		return false
	}
	s.members[item] = struct{}{}
	s.items = append(s.items, item)
	s.pending = append(s.pending, item)
	return true
}

func (s *stateSet) contains(item grammar.Item) bool {
	_, ok := s.members[item]
	return ok
}

// pop removes an arbitrary pending item. The order doesn't affect the result of a recognition.
func (s *stateSet) pop() (grammar.Item, bool) {
	if len(s.pending) == 0 {
		return grammar.Item{}, false
	}
	last := len(s.pending) - 1
	item := s.pending[last]
	s.pending = s.pending[:last]
	return item, true
}

func (s *stateSet) isDrained() bool {
	return len(s.pending) == 0
}

func (s *stateSet) len() int {
	return len(s.items)
}

func (s *stateSet) getItems() []grammar.Item {
	items := make([]grammar.Item, len(s.items))
	copy(items, s.items)
	return items
}

// completerIndex maps a position i and a non-terminal symbol N to the non-final items that were waiting on N at i.
// A lookup of a position and a symbol that nothing waited on yields an empty list.
type completerIndex struct {
	entries []map[symbol.Symbol][]grammar.Item
}

func newCompleterIndex(size int, nonTerms []symbol.Symbol) *completerIndex {
	entries := make([]map[symbol.Symbol][]grammar.Item, size)
	for i := range entries {
		m := make(map[symbol.Symbol][]grammar.Item, len(nonTerms)+1)
		m[symbol.Root] = nil
		for _, sym := range nonTerms {
			m[sym] = nil
		}
		entries[i] = m
	}
	return &completerIndex{
		entries: entries,
	}
}

func (idx *completerIndex) record(pos int, nonTerm symbol.Symbol, item grammar.Item) {
	idx.entries[pos][nonTerm] = append(idx.entries[pos][nonTerm], item)
}

func (idx *completerIndex) waiting(pos int, nonTerm symbol.Symbol) []grammar.Item {
	return idx.entries[pos][nonTerm]
}

// dedupBuffer tracks the items the predictor created during one sweep of a position, indexed by their origins.
type dedupBuffer struct {
	origins []map[grammar.Item]struct{}
}

func newDedupBuffer(size int) *dedupBuffer {
	return &dedupBuffer{
		origins: make([]map[grammar.Item]struct{}, size),
	}
}

// add returns false when the buffer already has the item.
func (b *dedupBuffer) add(item grammar.Item) bool {
	m := b.origins[item.Origin]
	if m == nil {
		m = map[grammar.Item]struct{}{}
		b.origins[item.Origin] = m
	}
	if _, ok := m[item]; ok {
		return false
	}
	m[item] = struct{}{}
	return true
}
