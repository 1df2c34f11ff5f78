package driver

import "github.com/nihei9/earlook/grammar"

// Tracer receives events of a recognition. A recognizer calls a tracer synchronously, so a tracer shared by
// concurrent recognitions must synchronize by itself.
type Tracer interface {
	// SetAdvanced is called when a recognizer begins to process the state set at pos.
	SetAdvanced(pos int)

	// ItemConsidered is called when a recognizer takes an item out of the state set at pos.
	ItemConsidered(pos int, item grammar.Item)

	// ItemInserted is called when a new item enters the state set at pos.
	ItemInserted(pos int, item grammar.Item)

	// Finished is called once at the end of a recognition.
	Finished(accepted bool)
}

type nopTracer struct{}

func (nopTracer) SetAdvanced(pos int)                       {}
func (nopTracer) ItemConsidered(pos int, item grammar.Item) {}
func (nopTracer) ItemInserted(pos int, item grammar.Item)   {}
func (nopTracer) Finished(accepted bool)                    {}
