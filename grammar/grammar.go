package grammar

import (
	"fmt"

	verr "github.com/nihei9/earlook/error"
	"github.com/nihei9/earlook/grammar/symbol"
	"github.com/nihei9/earlook/spec"
)

// Grammar is an ordered list of productions augmented with the root production `<root> → start <eof>`. The root
// production always has the number 0, and user-defined productions follow it in the order they were given.
// A grammar never changes after construction, so one grammar can be shared by any number of recognizers.
type Grammar struct {
	productionSet *productionSet
	startSymbol   symbol.Symbol
	nonTerminals  []symbol.Symbol
	terminals     []symbol.Symbol
}

// NewGrammar makes a grammar from productions and a start symbol. It accepts any productions, including empty,
// duplicate, and unreachable ones.
func NewGrammar(prods []*Production, start symbol.Symbol) *Grammar {
	ps := newProductionSet()
	ps.append(newProduction(symbol.Root, []symbol.Symbol{start, symbol.EndMarker}))
	for _, prod := range prods {
		ps.append(prod)
	}

	var nonTerms []symbol.Symbol
	var terms []symbol.Symbol
	{
		seen := map[symbol.Symbol]struct{}{}
		add := func(sym symbol.Symbol) {
			if sym.IsRoot() || sym.IsEndMarker() {
				return
			}
			if _, ok := seen[sym]; ok {
				return
			}
			seen[sym] = struct{}{}
			if sym.IsNonTerminal() {
				nonTerms = append(nonTerms, sym)
			} else {
				terms = append(terms, sym)
			}
		}
		add(start)
		for _, prod := range prods {
			add(prod.lhs)
		}
		for _, prod := range prods {
			for _, sym := range prod.rhs {
				add(sym)
			}
		}
	}

	return &Grammar{
		productionSet: ps,
		startSymbol:   start,
		nonTerminals:  nonTerms,
		terminals:     terms,
	}
}

func (g *Grammar) production(p int) *Production {
	prod, ok := g.productionSet.findByNum(productionNum(p))
	if !ok {
		panic(fmt.Errorf("a production number is out of range; number: %v, production count: %v", p, g.Len()))
	}
	return prod
}

// Production returns the production numbered p. The root production is numbered 0.
func (g *Grammar) Production(p int) *Production {
	return g.production(p)
}

// Productions returns all productions including the root production.
func (g *Grammar) Productions() []*Production {
	all := g.productionSet.getAllProductions()
	prods := make([]*Production, len(all))
	copy(prods, all)
	return prods
}

// Len returns the number of productions including the root production.
func (g *Grammar) Len() int {
	return len(g.productionSet.getAllProductions())
}

func (g *Grammar) Start() symbol.Symbol {
	return g.startSymbol
}

// NonTerminals returns the user-visible non-terminal symbols in order of their first appearance.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	syms := make([]symbol.Symbol, len(g.nonTerminals))
	copy(syms, g.nonTerminals)
	return syms
}

// Terminals returns the terminal symbols used in productions in order of their first appearance.
// The end marker isn't included.
func (g *Grammar) Terminals() []symbol.Symbol {
	syms := make([]symbol.Symbol, len(g.terminals))
	copy(syms, g.terminals)
	return syms
}

// SymbolAt returns the symbol at the position j of the body of the production p. When j runs past the end of the
// body, SymbolAt reads the context instead, as though the context followed the body. The caller must pass a context
// long enough; otherwise, SymbolAt panics.
func (g *Grammar) SymbolAt(p, j int, context string) symbol.Symbol {
	prod := g.production(p)
	if j < 0 {
		panic(fmt.Errorf("a position must be greater than or equal to 0; production: %v, position: %v", p, j))
	}
	if j < prod.rhsLen {
		return prod.rhs[j]
	}

	k := j - prod.rhsLen
	for _, r := range context {
		if k == 0 {
			return symbol.Symbol(r)
		}
		k--
	}
	panic(fmt.Errorf("a context is exhausted; production: %v, position: %v, context: %q", prod, j, context))
}

// ProductionsFor returns the numbers of the productions whose head is lhs, in the order they were given.
func (g *Grammar) ProductionsFor(lhs symbol.Symbol) []int {
	nums, _ := g.productionSet.findByLHS(lhs)
	ps := make([]int, len(nums))
	for i, num := range nums {
		ps[i] = num.Int()
	}
	return ps
}

// Bodies returns the bodies of the productions whose head is lhs, in the order they were given.
func (g *Grammar) Bodies(lhs symbol.Symbol) [][]symbol.Symbol {
	if !lhs.IsNonTerminal() {
		panic(fmt.Errorf("a terminal symbol cannot be a head of a production: %v", lhs))
	}
	nums, _ := g.productionSet.findByLHS(lhs)
	bodies := make([][]symbol.Symbol, len(nums))
	for i, num := range nums {
		bodies[i] = g.production(num.Int()).RHS()
	}
	return bodies
}

// Head returns the head of the production p.
func (g *Grammar) Head(p int) symbol.Symbol {
	return g.production(p).lhs
}

func (g *Grammar) IsFinal(item Item) bool {
	return item.Dot == g.production(item.Prod).rhsLen
}

func (g *Grammar) IsNonfinal(item Item) bool {
	return !g.IsFinal(item)
}

// GrammarBuilder builds a grammar from an AST of a grammar definition. Unlike NewGrammar, it rejects definitions
// that cannot mean what a user expects, such as a head consisting of multiple symbols.
type GrammarBuilder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if len(b.AST.Productions) == 0 {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrNoProduction,
		})
		return nil, b.errs
	}

	startText := b.findStartSymbol()

	prods := make([]*Production, 0, len(b.AST.Productions))
	defined := map[symbol.Symbol]struct{}{}
	for _, prod := range b.AST.Productions {
		lhs, ok := b.genLHS(prod)
		if !ok {
			continue
		}
		defined[lhs] = struct{}{}
		for _, alt := range prod.RHS {
			rhs := symbol.FromString(alt.Symbols)
			for _, sym := range rhs {
				if sym.IsEndMarker() {
					b.errs = append(b.errs, &verr.SpecError{
						Cause: semErrReservedSym,
						Row:   alt.Pos.Row,
						Col:   alt.Pos.Col,
					})
				}
			}
			prods = append(prods, newProduction(lhs, rhs))
		}
	}
	if len(b.errs) > 0 {
		b.errs.Sort()
		return nil, b.errs
	}

	for _, prod := range b.AST.Productions {
		for _, alt := range prod.RHS {
			for _, sym := range symbol.FromString(alt.Symbols) {
				if !sym.IsNonTerminal() {
					continue
				}
				if _, ok := defined[sym]; ok {
					continue
				}
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrUndefinedSym,
					Detail: sym.String(),
					Row:    alt.Pos.Row,
					Col:    alt.Pos.Col,
				})
			}
		}
	}

	var start symbol.Symbol
	if startText == "" {
		start = prods[0].lhs
	} else {
		start = symbol.Symbol([]rune(startText)[0])
		if _, ok := defined[start]; !ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrUndefinedStartSym,
				Detail: startText,
			})
		}
	}

	if len(b.errs) > 0 {
		b.errs.Sort()
		return nil, b.errs
	}

	return NewGrammar(prods, start), nil
}

func (b *GrammarBuilder) findStartSymbol() string {
	var startText string
	found := false
	for _, dir := range b.AST.Directives {
		if dir.Name != "start" {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDirInvalidName,
				Detail: dir.Name,
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}

		if found {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateDir,
				Detail: dir.Name,
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}
		found = true

		if len(dir.Parameters) != 1 || !isSingleNonTerminal(dir.Parameters[0].ID) {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDirInvalidParam,
				Detail: "'start' takes just one non-terminal symbol",
				Row:    dir.Pos.Row,
				Col:    dir.Pos.Col,
			})
			continue
		}

		startText = dir.Parameters[0].ID
	}
	return startText
}

func (b *GrammarBuilder) genLHS(prod *spec.ProductionNode) (symbol.Symbol, bool) {
	if !isSingleNonTerminal(prod.LHS) {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrInvalidLHS,
			Detail: prod.LHS,
			Row:    prod.Pos.Row,
			Col:    prod.Pos.Col,
		})
		return symbol.EndMarker, false
	}
	return symbol.Symbol([]rune(prod.LHS)[0]), true
}

func isSingleNonTerminal(text string) bool {
	syms := symbol.FromString(text)
	return len(syms) == 1 && syms[0].IsNonTerminal()
}
