package driver

import (
	"sync"
	"testing"

	"github.com/nihei9/earlook/grammar"
	"github.com/nihei9/earlook/grammar/symbol"
)

type testProduction struct {
	lhs rune
	rhs string
}

func newTestGrammar(start rune, prods ...testProduction) *grammar.Grammar {
	ps := make([]*grammar.Production, len(prods))
	for i, p := range prods {
		ps[i] = grammar.NewProduction(p.lhs, p.rhs)
	}
	return grammar.NewGrammar(ps, symbol.Symbol(start))
}

// E → T | E+T
// T → P | T*P
// P → a
func newExprGrammar() *grammar.Grammar {
	return newTestGrammar('E',
		testProduction{'E', "T"},
		testProduction{'E', "E+T"},
		testProduction{'T', "P"},
		testProduction{'T', "T*P"},
		testProduction{'P', "a"},
	)
}

func TestRecognizer_Recognize(t *testing.T) {
	exprGram := newExprGrammar()

	tests := []struct {
		caption string
		gram    *grammar.Grammar
		horizon int
		input   string
		accept  bool
	}{
		{
			caption: "a sum of a product is accepted",
			gram:    exprGram,
			horizon: 1,
			input:   "a+a*a",
			accept:  true,
		},
		{
			caption: "a single symbol is accepted",
			gram:    exprGram,
			horizon: 1,
			input:   "a",
			accept:  true,
		},
		{
			caption: "a dangling operator is rejected",
			gram:    exprGram,
			horizon: 1,
			input:   "a+",
			accept:  false,
		},
		{
			caption: "the empty input is rejected when the start symbol cannot derive the empty string",
			gram:    exprGram,
			horizon: 1,
			input:   "",
			accept:  false,
		},
		{
			caption: "a long expression is accepted",
			gram:    exprGram,
			horizon: 1,
			input:   "a*a+a*a*a+a",
			accept:  true,
		},
		{
			caption: "adjacent operators are rejected",
			gram:    exprGram,
			horizon: 1,
			input:   "a+*a",
			accept:  false,
		},
		{
			caption: "an unknown terminal symbol is rejected",
			gram:    exprGram,
			horizon: 1,
			input:   "a-a",
			accept:  false,
		},
		{
			caption: "a non-terminal symbol in an input never matches",
			gram:    exprGram,
			horizon: 1,
			input:   "E",
			accept:  false,
		},
		{
			caption: "the horizon 0 accepts a sum of a product",
			gram:    exprGram,
			horizon: 0,
			input:   "a+a*a",
			accept:  true,
		},
		{
			caption: "the horizon 0 rejects a dangling operator",
			gram:    exprGram,
			horizon: 0,
			input:   "a+",
			accept:  false,
		},
		{
			caption: "the empty input is accepted when the start symbol has an empty production",
			gram: newTestGrammar('S',
				testProduction{'S', ""},
				testProduction{'S', "aSb"},
			),
			horizon: 1,
			input:   "",
			accept:  true,
		},
		{
			caption: "a nested production with an empty production is accepted",
			gram: newTestGrammar('S',
				testProduction{'S', ""},
				testProduction{'S', "aSb"},
			),
			horizon: 1,
			input:   "aaabbb",
			accept:  true,
		},
		{
			caption: "an unbalanced input is rejected",
			gram: newTestGrammar('S',
				testProduction{'S', ""},
				testProduction{'S', "aSb"},
			),
			horizon: 1,
			input:   "aabbb",
			accept:  false,
		},
		{
			caption: "a grammar with dead productions is tolerated",
			gram: newTestGrammar('S',
				testProduction{'S', "a"},
				testProduction{'S', "X"},
				testProduction{'U', "b"},
				testProduction{'S', "a"},
			),
			horizon: 1,
			input:   "a",
			accept:  true,
		},
		{
			caption: "nullable non-terminals are completed regardless of order under the horizon 0",
			gram: newTestGrammar('S',
				testProduction{'S', "AA"},
				testProduction{'A', ""},
				testProduction{'A', "b"},
			),
			horizon: 0,
			input:   "",
			accept:  true,
		},
		{
			caption: "a look-ahead string consisting of a non-terminal symbol blocks the completion under the horizon 1",
			gram: newTestGrammar('S',
				testProduction{'S', "AA"},
				testProduction{'A', ""},
				testProduction{'A', "b"},
			),
			horizon: 1,
			input:   "",
			accept:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			r := NewRecognizer(tt.gram, tt.horizon)
			accepted := r.Recognize(tt.input)
			if accepted != tt.accept {
				t.Fatalf("unexpected result; input: %q, horizon: %v, want: %v, got: %v", tt.input, tt.horizon, tt.accept, accepted)
			}
		})
	}
}

func TestRecognizer_Deterministic(t *testing.T) {
	r := NewRecognizer(newExprGrammar(), 1)
	for _, input := range []string{"a+a*a", "a+", "", "a*a*"} {
		first := r.Recognize(input)
		for i := 0; i < 10; i++ {
			if r.Recognize(input) != first {
				t.Fatalf("a recognizer returned different results for the same input: %q", input)
			}
		}
	}
}

func TestRecognizer_GrammarIsShared(t *testing.T) {
	gram := newExprGrammar()
	before := gram.Productions()
	beforeLen := gram.Len()

	r0 := NewRecognizer(gram, 0)
	r1 := NewRecognizer(gram, 1)
	r2 := NewRecognizer(gram, 2)
	for _, input := range []string{"a+a*a", "a+", "a"} {
		want := r0.Recognize(input)
		if got := r1.Recognize(input); got != want {
			t.Fatalf("recognizers sharing a grammar returned different results; input: %q, horizon 0: %v, horizon 1: %v", input, want, got)
		}
		r2.Recognize(input)
	}

	if gram.Len() != beforeLen {
		t.Fatalf("a recognizer changed the number of productions; want: %v, got: %v", beforeLen, gram.Len())
	}
	after := gram.Productions()
	for i, prod := range after {
		if prod.String() != before[i].String() {
			t.Fatalf("a recognizer changed a production; want: %v, got: %v", before[i], prod)
		}
	}
}

func TestRecognizer_Concurrent(t *testing.T) {
	r := NewRecognizer(newExprGrammar(), 1)
	inputs := enumerateInputs([]rune("a+*"), 5)
	want := make([]bool, len(inputs))
	for i, input := range inputs {
		want[i] = r.Recognize(input)
	}

	got := make([]bool, len(inputs))
	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			got[i] = r.Recognize(input)
		}(i, input)
	}
	wg.Wait()

	for i := range inputs {
		if got[i] != want[i] {
			t.Fatalf("a concurrent recognition returned a different result; input: %q, want: %v, got: %v", inputs[i], want[i], got[i])
		}
	}
}

func TestRecognizer_NegativeHorizon(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("a negative horizon must cause a panic")
		}
	}()
	NewRecognizer(newExprGrammar(), -1)
}

var referenceGrammars = []struct {
	caption  string
	gram     *grammar.Grammar
	alphabet string
}{
	{
		caption:  "expressions",
		gram:     newExprGrammar(),
		alphabet: "a+*",
	},
	{
		caption: "nullable sequence",
		gram: newTestGrammar('S',
			testProduction{'S', "AA"},
			testProduction{'A', ""},
			testProduction{'A', "b"},
		),
		alphabet: "ab",
	},
	{
		caption: "ambiguous concatenation",
		gram: newTestGrammar('S',
			testProduction{'S', "SS"},
			testProduction{'S', "a"},
			testProduction{'S', ""},
		),
		alphabet: "ab",
	},
	{
		caption: "palindromes",
		gram: newTestGrammar('S',
			testProduction{'S', "aSa"},
			testProduction{'S', "bSb"},
			testProduction{'S', "a"},
			testProduction{'S', "b"},
			testProduction{'S', ""},
		),
		alphabet: "ab",
	},
	{
		caption: "right recursion through a nullable symbol",
		gram: newTestGrammar('S',
			testProduction{'S', "aBS"},
			testProduction{'S', "c"},
			testProduction{'B', ""},
			testProduction{'B', "b"},
		),
		alphabet: "abc",
	},
	{
		caption: "parentheses",
		gram: newTestGrammar('S',
			testProduction{'S', "(S)S"},
			testProduction{'S', ""},
		),
		alphabet: "()",
	},
}

func TestRecognizer_HorizonZeroIsPlainEarley(t *testing.T) {
	for _, tt := range referenceGrammars {
		t.Run(tt.caption, func(t *testing.T) {
			r := NewRecognizer(tt.gram, 0)
			for _, input := range enumerateInputs([]rune(tt.alphabet), 5) {
				want := referenceRecognize(tt.gram, input)
				got := r.Recognize(input)
				if got != want {
					t.Fatalf("unexpected result; input: %q, want: %v, got: %v", input, want, got)
				}
			}
		})
	}
}

func TestRecognizer_HorizonOneOnlyPrunes(t *testing.T) {
	for _, tt := range referenceGrammars {
		t.Run(tt.caption, func(t *testing.T) {
			r0 := NewRecognizer(tt.gram, 0)
			r1 := NewRecognizer(tt.gram, 1)
			for _, input := range enumerateInputs([]rune(tt.alphabet), 5) {
				if r1.Recognize(input) && !r0.Recognize(input) {
					t.Fatalf("the horizon 1 accepted an input the horizon 0 rejects: %q", input)
				}
			}
		})
	}

	// No non-terminal symbol follows another one in the expression grammar, so the look-ahead strings are always
	// terminal symbols and the horizon 1 loses nothing.
	r0 := NewRecognizer(newExprGrammar(), 0)
	r1 := NewRecognizer(newExprGrammar(), 1)
	for _, input := range enumerateInputs([]rune("a+*"), 5) {
		if r0.Recognize(input) != r1.Recognize(input) {
			t.Fatalf("the horizons 0 and 1 disagree on the expression grammar: %q", input)
		}
	}
}

type recordingTracer struct {
	advanced   []int
	considered map[int][]grammar.Item
	inserted   map[int][]grammar.Item
	finished   int
	accepted   bool
}

func newRecordingTracer() *recordingTracer {
	return &recordingTracer{
		considered: map[int][]grammar.Item{},
		inserted:   map[int][]grammar.Item{},
	}
}

func (t *recordingTracer) SetAdvanced(pos int) {
	t.advanced = append(t.advanced, pos)
}

func (t *recordingTracer) ItemConsidered(pos int, item grammar.Item) {
	t.considered[pos] = append(t.considered[pos], item)
}

func (t *recordingTracer) ItemInserted(pos int, item grammar.Item) {
	t.inserted[pos] = append(t.inserted[pos], item)
}

func (t *recordingTracer) Finished(accepted bool) {
	t.finished++
	t.accepted = accepted
}

func TestRecognizer_Trace(t *testing.T) {
	for _, input := range []string{"a+a*a", "a+"} {
		tr := newRecordingTracer()
		r := NewRecognizer(newExprGrammar(), 1, Trace(tr))
		rc := r.run(input)

		if tr.finished != 1 {
			t.Fatalf("Finished must be called once; got: %v", tr.finished)
		}
		if tr.accepted != rc.accepted {
			t.Fatalf("a tracer saw a different result; want: %v, got: %v", rc.accepted, tr.accepted)
		}
		for i, pos := range tr.advanced {
			if pos != i {
				t.Fatalf("positions must be processed in order; want: %v, got: %v", i, pos)
			}
		}

		// Every inserted item stays in its state set, and each item is considered at most once per position.
		for pos, items := range tr.inserted {
			set := rc.sets[pos]
			if set.len() != len(items) {
				t.Fatalf("the size of a state set is mismatched; position: %v, want: %v, got: %v", pos, len(items), set.len())
			}
			for _, item := range items {
				if !set.contains(item) {
					t.Fatalf("an inserted item disappeared; position: %v, item: %v", pos, rc.gram.ItemString(item))
				}
			}
		}
		for pos, items := range tr.considered {
			seen := map[grammar.Item]struct{}{}
			for _, item := range items {
				if _, ok := seen[item]; ok {
					t.Fatalf("an item was processed twice; position: %v, item: %v", pos, rc.gram.ItemString(item))
				}
				seen[item] = struct{}{}
			}
			if !rc.sets[pos].isDrained() {
				t.Fatalf("a processed state set must be drained; position: %v", pos)
			}
		}
	}
}

func TestRecognizer_AcceptingItem(t *testing.T) {
	gram := newExprGrammar()
	rc := NewRecognizer(gram, 1).run("a")
	want := grammar.Item{
		Prod:      0,
		Dot:       2,
		Origin:    0,
		LookAhead: "\x00",
	}
	if !rc.sets[2].contains(want) {
		t.Fatalf("the state set 2 must contain the accepting item %v", gram.ItemString(want))
	}
}

func enumerateInputs(alphabet []rune, maxLen int) []string {
	inputs := []string{""}
	prev := []string{""}
	for l := 1; l <= maxLen; l++ {
		var next []string
		for _, s := range prev {
			for _, r := range alphabet {
				next = append(next, s+string(r))
			}
		}
		inputs = append(inputs, next...)
		prev = next
	}
	return inputs
}

type refItem struct {
	prod   int
	dot    int
	origin int
}

// referenceRecognize is a naive Earley recognizer without look-ahead. It recomputes each state set until nothing
// changes, so it doesn't depend on any processing order.
func referenceRecognize(gram *grammar.Grammar, input string) bool {
	in := symbol.FromString(input)
	n := len(in)

	sets := make([]map[refItem]struct{}, n+1)
	for i := range sets {
		sets[i] = map[refItem]struct{}{}
	}
	snapshot := func(set map[refItem]struct{}) []refItem {
		items := make([]refItem, 0, len(set))
		for item := range set {
			items = append(items, item)
		}
		return items
	}
	add := func(pos int, item refItem) bool {
		if _, ok := sets[pos][item]; ok {
			return false
		}
		sets[pos][item] = struct{}{}
		return true
	}

	for _, p := range gram.ProductionsFor(gram.Start()) {
		add(0, refItem{prod: p})
	}
	for i := 0; i <= n; i++ {
		for {
			changed := false
			for _, item := range snapshot(sets[i]) {
				rhs := gram.Production(item.prod).RHS()
				if item.dot < len(rhs) {
					sym := rhs[item.dot]
					if !sym.IsNonTerminal() {
						continue
					}
					for _, p := range gram.ProductionsFor(sym) {
						if add(i, refItem{prod: p, origin: i}) {
							changed = true
						}
					}
					continue
				}

				lhs := gram.Head(item.prod)
				for _, w := range snapshot(sets[item.origin]) {
					wRHS := gram.Production(w.prod).RHS()
					if w.dot >= len(wRHS) || wRHS[w.dot] != lhs {
						continue
					}
					if add(i, refItem{prod: w.prod, dot: w.dot + 1, origin: w.origin}) {
						changed = true
					}
				}
			}
			if !changed {
				break
			}
		}

		if i == n {
			break
		}
		for _, item := range snapshot(sets[i]) {
			rhs := gram.Production(item.prod).RHS()
			if item.dot < len(rhs) && rhs[item.dot] == in[i] && rhs[item.dot].IsTerminal() {
				add(i+1, refItem{prod: item.prod, dot: item.dot + 1, origin: item.origin})
			}
		}
	}

	for item := range sets[n] {
		if item.origin != 0 || gram.Head(item.prod) != gram.Start() || item.prod == 0 {
			continue
		}
		if item.dot == gram.Production(item.prod).Len() {
			return true
		}
	}
	return false
}
