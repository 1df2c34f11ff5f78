package main

import (
	"github.com/nihei9/earlook/driver"
	"github.com/nihei9/earlook/grammar"
	"github.com/tliron/commonlog"
)

// traceVerbosity is the commonlog verbosity that enables the debug level.
const traceVerbosity = 2

// logTracer writes the events of a recognition to the log at the debug level.
type logTracer struct {
	log  commonlog.Logger
	gram *grammar.Grammar
}

var _ driver.Tracer = &logTracer{}

func newLogTracer(gram *grammar.Grammar) *logTracer {
	return &logTracer{
		log:  commonlog.GetLogger("earlook.recognizer"),
		gram: gram,
	}
}

func (t *logTracer) SetAdvanced(pos int) {
	t.log.Debugf("S%v: begin", pos)
}

func (t *logTracer) ItemConsidered(pos int, item grammar.Item) {
	t.log.Debugf("S%v: consider %v", pos, t.gram.ItemString(item))
}

func (t *logTracer) ItemInserted(pos int, item grammar.Item) {
	t.log.Debugf("S%v: insert %v", pos, t.gram.ItemString(item))
}

func (t *logTracer) Finished(accepted bool) {
	t.log.Debugf("finished: %v", verdict(accepted))
}
