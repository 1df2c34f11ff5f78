package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/earlook/grammar/symbol"
	"github.com/nihei9/earlook/spec"
)

func genGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// newExprGrammar returns the following grammar. The productions are numbered 1 to 5 in order.
//
//	E → T | E + T
//	T → P | T * P
//	P → a
func newExprGrammar() *Grammar {
	return NewGrammar([]*Production{
		NewProduction('E', "T"),
		NewProduction('E', "E+T"),
		NewProduction('T', "P"),
		NewProduction('T', "T*P"),
		NewProduction('P', "a"),
	}, 'E')
}

func testSymbols(t *testing.T, syms []symbol.Symbol, expected string) {
	t.Helper()
	if symbol.ToString(syms) != expected {
		t.Fatalf("unexpected symbols; want: %#v, got: %#v", symbol.FromString(expected), syms)
	}
}

func expectPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if v := recover(); v == nil {
			t.Fatalf("a panic must occur")
		}
	}()
	f()
}
