package grammar

import (
	"fmt"
	"strings"

	"github.com/nihei9/earlook/grammar/symbol"
)

type productionNum int

const (
	productionNumRoot = productionNum(0)
	productionNumMin  = productionNum(1)
)

func (n productionNum) Int() int {
	return int(n)
}

// Production is an immutable pair of a head and a body. Its identity is its position in a grammar, not its content,
// so a grammar may contain duplicate productions.
type Production struct {
	lhs    symbol.Symbol
	rhs    []symbol.Symbol
	rhsLen int
}

// NewProduction makes a production from a head and a body text. Each code point of the body is one symbol, and an
// empty body makes an empty production.
func NewProduction(lhs rune, rhs string) *Production {
	return newProduction(symbol.Symbol(lhs), symbol.FromString(rhs))
}

func newProduction(lhs symbol.Symbol, rhs []symbol.Symbol) *Production {
	body := make([]symbol.Symbol, len(rhs))
	copy(body, rhs)
	return &Production{
		lhs:    lhs,
		rhs:    body,
		rhsLen: len(body),
	}
}

func (p *Production) LHS() symbol.Symbol {
	return p.lhs
}

// RHS returns a copy of the body.
func (p *Production) RHS() []symbol.Symbol {
	rhs := make([]symbol.Symbol, p.rhsLen)
	copy(rhs, p.rhs)
	return rhs
}

func (p *Production) Len() int {
	return p.rhsLen
}

func (p *Production) isEmpty() bool {
	return p.rhsLen == 0
}

func (p *Production) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", p.lhs)
	if p.isEmpty() {
		fmt.Fprintf(&b, " ε")
		return b.String()
	}
	for _, sym := range p.rhs {
		fmt.Fprintf(&b, " %v", sym)
	}
	return b.String()
}

type productionSet struct {
	prods     []*Production
	lhs2Prods map[symbol.Symbol][]productionNum
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]productionNum{},
	}
}

func (ps *productionSet) append(prod *Production) productionNum {
	num := productionNum(len(ps.prods))
	ps.prods = append(ps.prods, prod)
	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], num)
	return num
}

func (ps *productionSet) findByNum(num productionNum) (*Production, bool) {
	if num < 0 || int(num) >= len(ps.prods) {
		return nil, false
	}
	return ps.prods[num], true
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]productionNum, bool) {
	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

func (ps *productionSet) getAllProductions() []*Production {
	return ps.prods
}
