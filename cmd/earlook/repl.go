package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/nihei9/earlook/driver"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	lookahead *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file path>",
		Short: "Recognize lines typed interactively",
		Long: `repl reads lines from the terminal and prints accept or reject for each of them.
Type Ctrl-D to quit. A line ":k <n>" changes the length of look-ahead strings.`,
		Example: `  earlook repl expr.earlook`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	replFlags.lookahead = cmd.Flags().IntP("lookahead", "k", 1, "length of look-ahead strings (0 disables look-ahead checks)")
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	if *replFlags.lookahead < 0 {
		return fmt.Errorf("--lookahead must be greater than or equal to 0")
	}

	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: fmt.Sprintf("k=%v> ", *replFlags.lookahead),
	})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	r := driver.NewRecognizer(gram, *replFlags.lookahead)
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}

		var k int
		if n, _ := fmt.Sscanf(line, ":k %d", &k); n == 1 {
			if k < 0 {
				fmt.Fprintln(os.Stderr, "the length of look-ahead strings must be greater than or equal to 0")
				continue
			}
			r = driver.NewRecognizer(gram, k)
			rl.SetPrompt(fmt.Sprintf("k=%v> ", k))
			continue
		}

		fmt.Fprintln(os.Stdout, verdict(r.Recognize(line)))
	}
}
