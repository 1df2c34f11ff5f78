package main

import (
	"errors"
	"fmt"
	"os"

	verr "github.com/nihei9/earlook/error"
	"github.com/nihei9/earlook/grammar"
	"github.com/nihei9/earlook/spec"
)

// readGrammar reads a grammar definition file. Errors in the definition come back with the file path so that they
// can quote the offending line.
func readGrammar(path string) (grm *grammar.Grammar, retErr error) {
	defer func() {
		if retErr == nil {
			return
		}
		var specErrs verr.SpecErrors
		if errors.As(retErr, &specErrs) {
			for _, err := range specErrs {
				err.FilePath = path
				err.SourceName = path
			}
			return
		}
		var specErr *verr.SpecError
		if errors.As(retErr, &specErr) {
			specErr.FilePath = path
			specErr.SourceName = path
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	ast, err := spec.Parse(f)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	return b.Build()
}

func verdict(accepted bool) string {
	if accepted {
		return "accept"
	}
	return "reject"
}
