package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/nihei9/earlook/driver"
	"github.com/nihei9/earlook/grammar"
	tspec "github.com/nihei9/earlook/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "

		msgLines := strings.Split(r.Error.Error(), "\n")
		return fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestSuiteWithMetadata struct {
	TestSuite *tspec.TestSuite
	FilePath  string
	Error     error
}

// ListTestSuites reads a test suite file, or every *.toml file under a directory recursively. A file that cannot be
// read becomes an entry holding the error, so that a caller can report it as a failed test.
func ListTestSuites(testPath string) []*TestSuiteWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestSuiteWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		s, err := parseTestSuite(testPath)
		return []*TestSuiteWithMetadata{
			{
				TestSuite: s,
				FilePath:  testPath,
				Error:     err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestSuiteWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var suites []*TestSuiteWithMetadata
	for _, e := range es {
		if !e.IsDir() && filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		ss := ListTestSuites(filepath.Join(testPath, e.Name()))
		suites = append(suites, ss...)
	}
	return suites
}

func parseTestSuite(testSuitePath string) (*tspec.TestSuite, error) {
	f, err := os.Open(testSuitePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestSuite(f)
}

type Tester struct {
	Grammar *grammar.Grammar
	Suites  []*TestSuiteWithMetadata
}

// Run runs all cases sequentially and returns one result per case. A suite that failed to load yields one failed
// result.
func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, s := range t.Suites {
		rs = append(rs, runTestSuite(t.Grammar, s)...)
	}
	return rs
}

func runTestSuite(g *grammar.Grammar, s *TestSuiteWithMetadata) []*TestResult {
	if s.Error != nil {
		return []*TestResult{
			{
				TestCasePath: s.FilePath,
				Error:        s.Error,
			},
		}
	}

	r := driver.NewRecognizer(g, s.TestSuite.Lookahead)
	rs := make([]*TestResult, len(s.TestSuite.Cases))
	for i, c := range s.TestSuite.Cases {
		rs[i] = runTestCase(r, fmt.Sprintf("%v#%v", s.FilePath, c.Name), c)
	}
	return rs
}

func runTestCase(r *driver.Recognizer, path string, c *tspec.TestCase) (result *TestResult) {
	defer func() {
		if v := recover(); v != nil {
			// The recognizer panics only when it is broken, so we include a stack trace in the error message.
			result = &TestResult{
				TestCasePath: path,
				Error:        fmt.Errorf("the recognizer panicked: %v\n%v", v, string(debug.Stack())),
			}
		}
	}()

	accepted := r.Recognize(c.Input)
	if accepted != c.Accept {
		return &TestResult{
			TestCasePath: path,
			Error:        fmt.Errorf("verdict mismatch for %q: want %v, got %v", c.Input, verdict(c.Accept), verdict(accepted)),
		}
	}
	return &TestResult{
		TestCasePath: path,
	}
}

func verdict(accepted bool) string {
	if accepted {
		return "accept"
	}
	return "reject"
}
