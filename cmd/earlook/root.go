package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var rootFlags = struct {
	verbose *int
}{}

var rootCmd = &cobra.Command{
	Use:   "earlook",
	Short: "Recognize strings with a bounded-lookahead Earley recognizer",
	Long: `earlook decides whether a context-free grammar derives a string.
A grammar is written in a small definition language:

  %start E
  E : T | E+T ;
  T : P | T*P ;
  P : a ;

Upper-case letters are non-terminal symbols and every other character is a terminal symbol.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(*rootFlags.verbose, nil)
	},
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().CountP("verbose", "v", "increase the verbosity of the log (repeatable)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
