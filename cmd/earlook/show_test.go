package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nihei9/earlook/grammar"
)

func newExprGrammar() *grammar.Grammar {
	return grammar.NewGrammar([]*grammar.Production{
		grammar.NewProduction('E', "T"),
		grammar.NewProduction('E', "E+T"),
		grammar.NewProduction('T', "P"),
		grammar.NewProduction('T', "T*P"),
		grammar.NewProduction('P', "a"),
		grammar.NewProduction('O', ""),
	}, 'E')
}

func TestFormatDescription(t *testing.T) {
	out := formatDescription(newExprGrammar().Describe())
	for _, want := range []string{
		"Start: E",
		"<root> → E <eof>",
		"E → E + T",
		"O → ε",
		"Non-terminal",
		"FIRST",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("the output must contain %q:\n%v", want, out)
		}
	}
}

func TestWriteDescriptionJSON(t *testing.T) {
	var b bytes.Buffer
	err := writeDescriptionJSON(&b, newExprGrammar().Describe())
	if err != nil {
		t.Fatal(err)
	}
	desc := &grammar.Description{}
	err = json.Unmarshal(b.Bytes(), desc)
	if err != nil {
		t.Fatal(err)
	}
	if desc.Start != "E" {
		t.Fatalf("unexpected start symbol; want: E, got: %v", desc.Start)
	}
	if len(desc.Productions) != 7 {
		t.Fatalf("unexpected production count; want: 7, got: %v", len(desc.Productions))
	}
	if !desc.Productions[0].Root {
		t.Fatalf("the production #0 must be the root production")
	}
}
