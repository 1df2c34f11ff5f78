package driver

import (
	"fmt"
	"strings"

	"github.com/nihei9/earlook/grammar"
	"github.com/nihei9/earlook/grammar/symbol"
)

type RecognizerOption func(r *Recognizer)

// Trace makes a recognizer report its progress to a tracer.
func Trace(t Tracer) RecognizerOption {
	return func(r *Recognizer) {
		if t == nil {
			r.tracer = nopTracer{}
			return
		}
		r.tracer = t
	}
}

// Recognizer decides whether a grammar derives an input using Earley items that carry look-ahead strings of a fixed
// length (the horizon). A recognizer holds no state between recognitions, so it can recognize inputs concurrently.
type Recognizer struct {
	gram    *grammar.Grammar
	horizon int
	tracer  Tracer
}

// NewRecognizer makes a recognizer. The horizon 0 disables look-ahead checks and makes the recognizer a plain Earley
// recognizer. A negative horizon is a programming error.
func NewRecognizer(gram *grammar.Grammar, horizon int, opts ...RecognizerOption) *Recognizer {
	if gram == nil {
		panic(fmt.Errorf("a grammar must be non-nil"))
	}
	if horizon < 0 {
		panic(fmt.Errorf("a look-ahead horizon must be greater than or equal to 0; horizon: %v", horizon))
	}

	r := &Recognizer{
		gram:    gram,
		horizon: horizon,
		tracer:  nopTracer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recognizer) Grammar() *grammar.Grammar {
	return r.gram
}

func (r *Recognizer) Horizon() int {
	return r.horizon
}

// Recognize reports whether the grammar derives the input. Upper-case symbols in the input are legal, but they never
// match a terminal symbol.
func (r *Recognizer) Recognize(input string) bool {
	return r.run(input).accepted
}

type recognition struct {
	gram    *grammar.Grammar
	horizon int
	tracer  Tracer

	// src is the input followed by horizon+1 end markers.
	src []symbol.Symbol
	n   int

	sets     []*stateSet
	complIdx *completerIndex

	accepted bool
}

func (r *Recognizer) run(input string) *recognition {
	in := symbol.FromString(input)
	n := len(in)

	src := make([]symbol.Symbol, n+r.horizon+1)
	copy(src, in)
	for i := n; i < len(src); i++ {
		src[i] = symbol.EndMarker
	}

	// The scanner at the position n writes to the set n+1 even when the horizon is 0.
	setCount := n + 1 + r.horizon
	if r.horizon == 0 {
		setCount++
	}
	sets := make([]*stateSet, setCount)
	for i := range sets {
		sets[i] = newStateSet()
	}

	rc := &recognition{
		gram:     r.gram,
		horizon:  r.horizon,
		tracer:   r.tracer,
		src:      src,
		n:        n,
		sets:     sets,
		complIdx: newCompleterIndex(n+1, r.gram.NonTerminals()),
	}
	rc.accepted = rc.recognize()
	rc.tracer.Finished(rc.accepted)
	return rc
}

func (rc *recognition) recognize() bool {
	rc.insert(0, grammar.InitialItem(rc.horizon))

	for i := 0; i <= rc.n; i++ {
		if i >= len(rc.sets) {
			return false
		}
		rc.tracer.SetAdvanced(i)
		rc.sweep(i)
	}

	return rc.sets[rc.n+1].contains(grammar.AcceptingItem(rc.horizon))
}

// sweep processes the state set at pos until it gets drained. The predictor and the completer may add items to the
// same set while it is processed, so this is a fixpoint computation rather than a single pass.
func (rc *recognition) sweep(pos int) {
	set := rc.sets[pos]
	dedup := newDedupBuffer(pos + 1)
	window := symbol.ToString(rc.src[pos : pos+rc.horizon+1])

	// completedHere holds the non-terminal symbols completed at pos by items that also began at pos. An item that
	// starts waiting on one of them after its completion must be advanced at once.
	completedHere := map[symbol.Symbol]struct{}{}

	for !set.isDrained() {
		s, _ := set.pop()
		rc.tracer.ItemConsidered(pos, s)

		c := rc.gram.DottedSymbol(s)
		final := rc.gram.IsFinal(s)
		switch {
		case !final && c.IsNonTerminal():
			rc.predict(pos, s, c, dedup, completedHere)
		case final:
			rc.complete(pos, s, window, completedHere)
		case !final && c.IsTerminal():
			rc.scan(pos, s, c)
		}
	}
}

func (rc *recognition) predict(pos int, s grammar.Item, c symbol.Symbol, dedup *dedupBuffer, completedHere map[symbol.Symbol]struct{}) {
	rc.complIdx.record(pos, c, s)
	if _, ok := completedHere[c]; ok {
		rc.insert(pos, s.Advance())
	}

	la := rc.gram.Continuation(s, rc.horizon)
	for _, p := range rc.gram.ProductionsFor(c) {
		item := grammar.Item{
			Prod:      p,
			Dot:       0,
			Origin:    pos,
			LookAhead: la,
		}
		if !dedup.add(item) {
			continue
		}
		rc.insert(pos, item)
	}
}

// complete advances the items waiting on the head of s when the look-ahead string of s occurs in the window.
// The check is a containment test on the window of horizon+1 symbols starting at pos, not a prefix test.
func (rc *recognition) complete(pos int, s grammar.Item, window string, completedHere map[symbol.Symbol]struct{}) {
	if !strings.Contains(window, s.LookAhead) {
		return
	}

	lhs := rc.gram.Head(s.Prod)
	if s.Origin == pos {
		completedHere[lhs] = struct{}{}
	}
	for _, t := range rc.complIdx.waiting(s.Origin, lhs) {
		rc.insert(pos, t.Advance())
	}
}

func (rc *recognition) scan(pos int, s grammar.Item, c symbol.Symbol) {
	if c != rc.src[pos] {
		return
	}
	rc.insert(pos+1, s.Advance())
}

func (rc *recognition) insert(pos int, item grammar.Item) {
	if rc.sets[pos].add(item) {
		rc.tracer.ItemInserted(pos, item)
	}
}
