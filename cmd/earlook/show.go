package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/nihei9/earlook/grammar"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var showFlags = struct {
	json *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar file path>",
		Short:   "Print productions and FIRST/FOLLOW sets of a grammar",
		Example: `  earlook show expr.earlook`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	showFlags.json = cmd.Flags().Bool("json", false, "print the description as JSON")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	gram, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	log := commonlog.GetLogger("earlook.show")
	for _, sym := range gram.NonTerminalsWithoutProduction() {
		log.Warningf("%v has no production", sym)
	}

	desc := gram.Describe()
	if *showFlags.json {
		return writeDescriptionJSON(os.Stdout, desc)
	}
	_, err = fmt.Fprintln(os.Stdout, formatDescription(desc))
	return err
}

func writeDescriptionJSON(w io.Writer, desc *grammar.Description) error {
	b, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

const tableWidth = 80

func formatDescription(desc *grammar.Description) string {
	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	prodData := [][]string{{"#", "Production"}}
	for _, prod := range desc.Productions {
		prodData = append(prodData, []string{fmt.Sprintf("%v", prod.Number), formatProduction(prod)})
	}

	ntData := [][]string{{"Non-terminal", "Productions", "FIRST", "FOLLOW", "Nullable"}}
	for _, nt := range desc.NonTerminals {
		prods := make([]string, len(nt.Productions))
		for i, p := range nt.Productions {
			prods[i] = fmt.Sprintf("%v", p)
		}
		ntData = append(ntData, []string{
			nt.Name,
			strings.Join(prods, " "),
			strings.Join(nt.First, " "),
			strings.Join(nt.Follow, " "),
			fmt.Sprintf("%v", nt.Nullable),
		})
	}

	terms := make([]string, len(desc.Terminals))
	for i, t := range desc.Terminals {
		terms[i] = t.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Start: %v\n", desc.Start)
	fmt.Fprintf(&b, "Terminals: %v\n\n", strings.Join(terms, " "))
	b.WriteString(rosed.Edit("").InsertTableOpts(0, prodData, tableWidth, tableOpts).String())
	b.WriteString("\n\n")
	b.WriteString(rosed.Edit("").InsertTableOpts(0, ntData, tableWidth, tableOpts).String())
	return b.String()
}

func formatProduction(prod *grammar.ProductionDescription) string {
	if len(prod.RHS) == 0 {
		return fmt.Sprintf("%v → ε", prod.LHS)
	}
	return fmt.Sprintf("%v → %v", prod.LHS, strings.Join(prod.RHS, " "))
}
