package grammar

import "github.com/nihei9/earlook/grammar/symbol"

type followEntry struct {
	symbols map[symbol.Symbol]struct{}
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: map[symbol.Symbol]struct{}{},
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		for sym := range fst.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
	}

	if flw != nil {
		for sym := range flw.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
	}

	return changed
}

// FollowSet holds the terminal symbols that can follow each non-terminal symbol in a sentential form. Because the
// root production ends with the end marker, FOLLOW of the start symbol always contains the end marker.
type FollowSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollowSet(prods *productionSet) *FollowSet {
	flw := &FollowSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newFollowEntry()
	}
	return flw
}

// Symbols returns FOLLOW(sym) in ascending order. A symbol without productions has an empty FOLLOW set.
func (flw *FollowSet) Symbols(sym symbol.Symbol) []symbol.Symbol {
	e, ok := flw.set[sym]
	if !ok {
		return nil
	}
	return symbol.Sorted(e.symbols)
}

// Follow computes the FOLLOW sets of all non-terminal symbols that have productions.
func (g *Grammar) Follow() *FollowSet {
	return genFollowSet(g.productionSet, g.First())
}

func genFollowSet(prods *productionSet, first *FirstSet) *FollowSet {
	follow := newFollowSet(prods)
	for {
		more := false
		for ntsym, e := range follow.set {
			if genFollowEntry(prods, first, follow, e, ntsym) {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return follow
}

func genFollowEntry(prods *productionSet, first *FirstSet, follow *FollowSet, acc *followEntry, ntsym symbol.Symbol) bool {
	changed := false
	for _, prod := range prods.getAllProductions() {
		for i, sym := range prod.rhs {
			if sym != ntsym {
				continue
			}
			fst := first.find(prod, i+1)
			if acc.merge(fst, nil) {
				changed = true
			}
			if fst.empty {
				if acc.merge(nil, follow.set[prod.lhs]) {
					changed = true
				}
			}
		}
	}
	return changed
}
