package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/earlook/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  earlook test expr.earlook test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}

	var ss []*tester.TestSuiteWithMetadata
	{
		ss = tester.ListTestSuites(args[1])
		errOccurred := false
		for _, s := range ss {
			if s.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test suite or a directory: %v\n%v\n", s.FilePath, s.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Grammar: g,
		Suites:  ss,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
