package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/nihei9/earlook/driver"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var recognizeFlags = struct {
	lookahead *int
	source    *string
	strict    *bool
	trace     *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "recognize <grammar file path> [<input>...]",
		Short: "Decide whether a grammar derives inputs",
		Long: `recognize prints accept or reject for each input.
Inputs are taken from the arguments. When no input argument is given, each line of the source file
(or stdin) is one input.`,
		Example: `  earlook recognize expr.earlook 'a+a*a'
  cat inputs | earlook recognize expr.earlook -k 0`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRecognize,
	}
	recognizeFlags.lookahead = cmd.Flags().IntP("lookahead", "k", 1, "length of look-ahead strings (0 disables look-ahead checks)")
	recognizeFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	recognizeFlags.strict = cmd.Flags().Bool("strict", false, "exit with an error when any input is rejected")
	recognizeFlags.trace = cmd.Flags().Bool("trace", false, "log every step of the recognizer")
	rootCmd.AddCommand(cmd)
}

func runRecognize(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		panicked := false
		v := recover()
		if v != nil {
			err, ok := v.(error)
			if !ok {
				retErr = fmt.Errorf("an unexpected error occurred: %v", v)
				fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
				return
			}

			retErr = err
			panicked = true
		}

		if retErr != nil && panicked {
			fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
		}
	}()

	if *recognizeFlags.lookahead < 0 {
		return fmt.Errorf("--lookahead must be greater than or equal to 0")
	}
	if len(args) > 1 && *recognizeFlags.source != "" {
		return fmt.Errorf("You cannot pass inputs as arguments and --source at the same time")
	}

	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	var opts []driver.RecognizerOption
	if *recognizeFlags.trace {
		verbosity := *rootFlags.verbose
		if verbosity < traceVerbosity {
			verbosity = traceVerbosity
		}
		commonlog.Configure(verbosity, nil)
		opts = append(opts, driver.Trace(newLogTracer(gram)))
	}
	r := driver.NewRecognizer(gram, *recognizeFlags.lookahead, opts...)

	var inputs []string
	if len(args) > 1 {
		inputs = args[1:]
	} else {
		src := io.Reader(os.Stdin)
		if *recognizeFlags.source != "" {
			f, err := os.Open(*recognizeFlags.source)
			if err != nil {
				return fmt.Errorf("Cannot open the source file %s: %w", *recognizeFlags.source, err)
			}
			defer f.Close()
			src = f
		}
		inputs, err = readLines(src)
		if err != nil {
			return fmt.Errorf("Cannot read inputs: %w", err)
		}
	}

	rejected := 0
	for _, input := range inputs {
		accepted := r.Recognize(input)
		if !accepted {
			rejected++
		}
		fmt.Fprintln(os.Stdout, verdict(accepted))
	}
	if *recognizeFlags.strict && rejected > 0 {
		return fmt.Errorf("%v of %v inputs were rejected", rejected, len(inputs))
	}

	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
