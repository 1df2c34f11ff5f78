package grammar

import (
	"github.com/nihei9/earlook/grammar/symbol"
)

type firstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[symbol.Symbol]struct{}{},
		empty:   false,
	}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		added := e.add(sym)
		if added {
			changed = true
		}
	}
	return changed
}

// FirstSet holds the terminal symbols each non-terminal symbol can begin with, and whether each non-terminal symbol
// can derive the empty string.
type FirstSet struct {
	set map[symbol.Symbol]*firstEntry
}

func newFirstSet(prods *productionSet) *FirstSet {
	fst := &FirstSet{
		set: map[symbol.Symbol]*firstEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := fst.set[prod.lhs]; ok {
			continue
		}
		fst.set[prod.lhs] = newFirstEntry()
	}

	return fst
}

// Symbols returns FIRST(sym) in ascending order. A terminal symbol is its own FIRST set, and a non-terminal symbol
// without productions has an empty FIRST set.
func (fst *FirstSet) Symbols(sym symbol.Symbol) []symbol.Symbol {
	if sym.IsTerminal() {
		return []symbol.Symbol{sym}
	}
	e := fst.findBySymbol(sym)
	if e == nil {
		return nil
	}
	return symbol.Sorted(e.symbols)
}

// Nullable reports whether sym derives the empty string.
func (fst *FirstSet) Nullable(sym symbol.Symbol) bool {
	e := fst.findBySymbol(sym)
	if e == nil {
		return false
	}
	return e.empty
}

// find returns FIRST of the body of prod from the index head onward. A suffix that can vanish includes the empty
// string.
func (fst *FirstSet) find(prod *Production, head int) *firstEntry {
	entry := newFirstEntry()
	if prod.rhsLen <= head {
		entry.addEmpty()
		return entry
	}
	for _, sym := range prod.rhs[head:] {
		if sym.IsTerminal() {
			entry.add(sym)
			return entry
		}

		e := fst.findBySymbol(sym)
		if e == nil {
			return entry
		}
		for s := range e.symbols {
			entry.add(s)
		}
		if !e.empty {
			return entry
		}
	}
	entry.addEmpty()
	return entry
}

func (fst *FirstSet) findBySymbol(sym symbol.Symbol) *firstEntry {
	return fst.set[sym]
}

// First computes the FIRST sets of all non-terminal symbols of the grammar.
func (g *Grammar) First() *FirstSet {
	return genFirstSet(g.productionSet)
}

func genFirstSet(prods *productionSet) *FirstSet {
	first := newFirstSet(prods)
	for {
		more := false
		for _, prod := range prods.getAllProductions() {
			e := first.findBySymbol(prod.lhs)
			if genProdFirstEntry(first, e, prod) {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return first
}

func genProdFirstEntry(first *FirstSet, acc *firstEntry, prod *Production) bool {
	if prod.isEmpty() {
		return acc.addEmpty()
	}

	changed := false
	for _, sym := range prod.rhs {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed
		}

		// A non-terminal symbol without productions derives nothing, so the production can't contribute further.
		e := first.findBySymbol(sym)
		if e == nil {
			return changed
		}
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed
}
