// Package test reads test suites, which list inputs together with the verdicts a recognizer must return for them.
//
// A test suite is a TOML document:
//
//	description = "sums of a"
//	lookahead = 1
//
//	[[case]]
//	name = "sum"
//	input = "a+a"
//	accept = true
package test

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultLookahead is the horizon a suite runs with when it does not specify one.
const DefaultLookahead = 1

type TestCase struct {
	Name   string
	Input  string
	Accept bool
}

type TestSuite struct {
	Description string
	Lookahead   int
	Cases       []*TestCase
}

type testCaseFile struct {
	Name   string `toml:"name"`
	Input  string `toml:"input"`
	Accept *bool  `toml:"accept"`
}

type testSuiteFile struct {
	Description string          `toml:"description"`
	Lookahead   *int            `toml:"lookahead"`
	Cases       []*testCaseFile `toml:"case"`
}

func ParseTestSuite(r io.Reader) (*TestSuite, error) {
	var f testSuiteFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %v", strings.Join(keys, ", "))
	}

	lookahead := DefaultLookahead
	if f.Lookahead != nil {
		if *f.Lookahead < 0 {
			return nil, fmt.Errorf("lookahead must be greater than or equal to 0; lookahead: %v", *f.Lookahead)
		}
		lookahead = *f.Lookahead
	}

	if len(f.Cases) == 0 {
		return nil, fmt.Errorf("a test suite must have at least one case")
	}
	cases := make([]*TestCase, len(f.Cases))
	names := map[string]int{}
	for i, c := range f.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("case #%v: a case must have a name", i+1)
		}
		if j, ok := names[c.Name]; ok {
			return nil, fmt.Errorf("case #%v: the name '%v' is already used by case #%v", i+1, c.Name, j+1)
		}
		names[c.Name] = i
		if c.Accept == nil {
			return nil, fmt.Errorf("case '%v': a case must have an expected verdict (accept)", c.Name)
		}
		cases[i] = &TestCase{
			Name:   c.Name,
			Input:  c.Input,
			Accept: *c.Accept,
		}
	}

	return &TestSuite{
		Description: f.Description,
		Lookahead:   lookahead,
		Cases:       cases,
	}, nil
}
