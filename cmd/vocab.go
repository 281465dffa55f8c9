package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/iga/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab [name]",
	Short: "List the controlled vocabularies or the terms of one",
	Long: `List the InvenioRDM vocabularies records are checked against, or the
terms of one vocabulary.

Examples:
  iga vocab
  iga vocab contributorroles
  iga vocab licenses`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runVocab,
}

func runVocab(cmd *cobra.Command, args []string) error {
	registry, err := vocab.Default()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if len(args) == 0 {
		for _, name := range registry.List() {
			v, _ := registry.Get(name)
			fmt.Fprintf(w, "%s\t%d terms\t%s\n", name, len(v.Terms), v.Description)
		}
		return w.Flush()
	}

	v, ok := registry.Get(args[0])
	if !ok {
		return badUsage("unknown vocabulary %q", args[0])
	}
	for _, t := range v.Terms {
		note := ""
		if !t.InInvenio() {
			note = "(not in InvenioRDM)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Title, note)
	}
	return w.Flush()
}
