package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/iga/hub"
)

var idScheme string

var idCmd = &cobra.Command{
	Use:   "id <text>",
	Short: "Detect and normalize an identifier",
	Long: `Detect the scheme of an identifier and print its normalized form and
resolvable address. --scheme skips detection.

Examples:
  iga id https://doi.org/10.22002/ABCDE-12345
  iga id "arxiv: 2106.11211"
  iga id --scheme isbn 978-0-596-52068-7`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runID,
}

func init() {
	idCmd.Flags().StringVar(&idScheme, "scheme", "", "Identifier scheme, such as doi, orcid or ror")
}

func runID(cmd *cobra.Command, args []string) error {
	text := args[0]
	scheme := hub.Scheme(idScheme)
	if scheme == "" {
		detected, ok := hub.DetectScheme(text)
		if !ok {
			return badUsage("%q is not a recognized identifier", text)
		}
		scheme = detected
	} else if !hub.IsRecognized(scheme) {
		return badUsage("unknown scheme %q", idScheme)
	}

	value := hub.NormalizeIdentifier(text, scheme)
	if value == "" {
		return badUsage("%q is not a valid %s identifier", text, scheme)
	}
	id := hub.Identifier{Identifier: value, Scheme: scheme}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scheme: %s\n", id.Scheme)
	fmt.Fprintf(out, "identifier: %s\n", id.Identifier)
	if uri := hub.IdentifierURI(id); uri != "" && uri != id.Identifier {
		fmt.Fprintf(out, "uri: %s\n", uri)
	}
	return nil
}
