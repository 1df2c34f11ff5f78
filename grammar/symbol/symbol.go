package symbol

import (
	"fmt"
	"sort"
	"unicode"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

// Symbol is a single unit of a grammar and an input. An uppercase symbol is a non-terminal symbol, and any other
// symbol is a terminal symbol.
type Symbol rune

const (
	// EndMarker marks the end of an input and the end of a look-ahead window. It is treated as a terminal symbol.
	EndMarker = Symbol(0)

	// Root is the head of the root production. No grammar text or input can contain it because it isn't a valid
	// code point.
	Root = Symbol(-1)

	// The symbol names contain `<` and `>` to avoid conflicting with user-defined symbols.
	symbolNameEndMarker = "<eof>"
	symbolNameRoot      = "<root>"
)

func (s Symbol) String() string {
	switch s {
	case EndMarker:
		return symbolNameEndMarker
	case Root:
		return symbolNameRoot
	}
	return string(rune(s))
}

// GoString makes %#v print a symbol the way a user writes it.
func (s Symbol) GoString() string {
	return fmt.Sprintf("%q", s.String())
}

func (s Symbol) kind() symbolKind {
	if s == Root || (s != EndMarker && unicode.IsUpper(rune(s))) {
		return symbolKindNonTerminal
	}
	return symbolKindTerminal
}

func (s Symbol) IsNonTerminal() bool {
	return s.kind() == symbolKindNonTerminal
}

func (s Symbol) IsTerminal() bool {
	return s.kind() == symbolKindTerminal
}

func (s Symbol) IsEndMarker() bool {
	return s == EndMarker
}

func (s Symbol) IsRoot() bool {
	return s == Root
}

func IsNonTerminal(s Symbol) bool {
	return s.IsNonTerminal()
}

func IsTerminal(s Symbol) bool {
	return s.IsTerminal()
}

// FromString splits a text into symbols. Each code point becomes one symbol.
func FromString(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, Symbol(r))
	}
	return syms
}

// ToString joins symbols into a text. It is the inverse of FromString for symbols other than Root.
func ToString(syms []Symbol) string {
	rs := make([]rune, len(syms))
	for i, sym := range syms {
		rs[i] = rune(sym)
	}
	return string(rs)
}

// Repeat returns a text consisting of n copies of a symbol.
func Repeat(sym Symbol, n int) string {
	if n <= 0 {
		return ""
	}
	rs := make([]rune, n)
	for i := range rs {
		rs[i] = rune(sym)
	}
	return string(rs)
}

// Sorted returns the symbols of a set in ascending order. It is used to print sets deterministically.
func Sorted(set map[Symbol]struct{}) []Symbol {
	syms := make([]Symbol, 0, len(set))
	for sym := range set {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}
