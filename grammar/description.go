package grammar

import "github.com/nihei9/earlook/grammar/symbol"

type TerminalDescription struct {
	Name string `json:"name"`
}

type NonTerminalDescription struct {
	Name        string   `json:"name"`
	Productions []int    `json:"productions"`
	First       []string `json:"first"`
	Follow      []string `json:"follow"`
	Nullable    bool     `json:"nullable"`
}

type ProductionDescription struct {
	Number int      `json:"number"`
	LHS    string   `json:"lhs"`
	RHS    []string `json:"rhs"`
	Root   bool     `json:"root,omitempty"`
}

// Description is a report of a grammar for users.
type Description struct {
	Start        string                    `json:"start"`
	Terminals    []*TerminalDescription    `json:"terminals"`
	NonTerminals []*NonTerminalDescription `json:"non_terminals"`
	Productions  []*ProductionDescription  `json:"productions"`
}

func (g *Grammar) Describe() *Description {
	first := g.First()
	follow := g.Follow()

	terms := make([]*TerminalDescription, 0, len(g.terminals))
	for _, sym := range g.terminals {
		terms = append(terms, &TerminalDescription{
			Name: sym.String(),
		})
	}

	nonTerms := make([]*NonTerminalDescription, 0, len(g.nonTerminals))
	for _, sym := range g.nonTerminals {
		fst := []string{}
		for _, s := range first.Symbols(sym) {
			fst = append(fst, s.String())
		}
		flw := []string{}
		for _, s := range follow.Symbols(sym) {
			flw = append(flw, s.String())
		}
		prods := g.ProductionsFor(sym)
		if prods == nil {
			prods = []int{}
		}
		nonTerms = append(nonTerms, &NonTerminalDescription{
			Name:        sym.String(),
			Productions: prods,
			First:       fst,
			Follow:      flw,
			Nullable:    first.Nullable(sym),
		})
	}

	prods := make([]*ProductionDescription, 0, g.Len())
	for num, prod := range g.productionSet.getAllProductions() {
		rhs := make([]string, 0, prod.rhsLen)
		for _, sym := range prod.rhs {
			rhs = append(rhs, sym.String())
		}
		prods = append(prods, &ProductionDescription{
			Number: num,
			LHS:    prod.lhs.String(),
			RHS:    rhs,
			Root:   prod.lhs.IsRoot(),
		})
	}

	return &Description{
		Start:        g.startSymbol.String(),
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  prods,
	}
}

// NonTerminalsWithoutProduction returns non-terminal symbols that appear in productions but have no production
// of their own. A recognizer tolerates them, but they never derive anything.
func (g *Grammar) NonTerminalsWithoutProduction() []symbol.Symbol {
	var syms []symbol.Symbol
	for _, sym := range g.nonTerminals {
		if _, ok := g.productionSet.findByLHS(sym); !ok {
			syms = append(syms, sym)
		}
	}
	return syms
}
