package grammar

import (
	"fmt"
	"strings"

	"github.com/nihei9/earlook/grammar/symbol"
)

// Item is a state of a recognizer. Items are compared by value, so they can be map keys.
type Item struct {
	// Prod is the number of a production.
	Prod int

	// E → E + T
	//
	// Dot | Dotted Symbol | Item
	// ----+---------------+------------
	// 0   | E             | E →・E + T
	// 1   | +             | E → E・+ T
	// 2   | T             | E → E +・T
	// 3   | <eof>         | E → E + T・
	Dot int

	// Origin is the input position where the recognizer began to match the production.
	Origin int

	// LookAhead holds the symbols expected to follow the production when the item gets final.
	// Its length equals the look-ahead horizon of a recognizer.
	LookAhead string
}

// InitialItem returns the item a recognition starts with: `<root> →・start <eof>` at the position 0 expecting only
// end markers.
func InitialItem(horizon int) Item {
	return Item{
		Prod:      productionNumRoot.Int(),
		Dot:       0,
		Origin:    0,
		LookAhead: symbol.Repeat(symbol.EndMarker, horizon),
	}
}

// AcceptingItem returns the item that must appear at the position len(input)+1 for an input to be accepted. It is
// the initial item advanced past both symbols of the root production.
func AcceptingItem(horizon int) Item {
	item := InitialItem(horizon)
	item.Dot = 2
	return item
}

// Advance returns a new item whose dot has moved over one symbol.
func (item Item) Advance() Item {
	return Item{
		Prod:      item.Prod,
		Dot:       item.Dot + 1,
		Origin:    item.Origin,
		LookAhead: item.LookAhead,
	}
}

// DottedSymbol returns the symbol following the dot. A final item returns the end marker.
func (g *Grammar) DottedSymbol(item Item) symbol.Symbol {
	return g.SymbolAt(item.Prod, item.Dot, symbol.Repeat(symbol.EndMarker, 1))
}

// Continuation returns the look-ahead string of an item predicted from the non-final item s. Each symbol is drawn
// from the body of s past the dotted symbol, and then from the look-ahead string of s.
//
// For the horizon 1, the result is the symbol right after the dotted symbol. For a larger horizon, the same rule is
// applied horizon times, and that composition hasn't been verified.
func (g *Grammar) Continuation(s Item, horizon int) string {
	if horizon <= 0 {
		return ""
	}
	syms := make([]symbol.Symbol, horizon)
	for k := 0; k < horizon; k++ {
		syms[k] = g.SymbolAt(s.Prod, s.Dot+1+k, s.LookAhead)
	}
	return symbol.ToString(syms)
}

// ItemString formats an item like `[E → E + ・T, 0, "*"]`.
func (g *Grammar) ItemString(item Item) string {
	prod := g.production(item.Prod)

	var b strings.Builder
	fmt.Fprintf(&b, "[%v →", prod.lhs)
	for i, sym := range prod.rhs {
		if i == item.Dot {
			fmt.Fprintf(&b, " ・%v", sym)
			continue
		}
		fmt.Fprintf(&b, " %v", sym)
	}
	if item.Dot == prod.rhsLen {
		fmt.Fprintf(&b, "・")
	}

	var la []string
	for _, sym := range symbol.FromString(item.LookAhead) {
		la = append(la, sym.String())
	}
	fmt.Fprintf(&b, ", %v, %q]", item.Origin, strings.Join(la, ""))

	return b.String()
}
