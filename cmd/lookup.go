package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/reference"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Query the registries the crosswalk uses",
	Long: `Query ORCID, ROR, the PubMed id converter and DOI content negotiation
the same way the crosswalk does, with the same caching and fallbacks.

Examples:
  iga lookup orcid 0000-0001-9105-5960
  iga lookup ror https://ror.org/05dxps055
  iga lookup doi PMC3531190
  iga lookup reference arXiv:2106.11211`,
}

var lookupORCIDCmd = &cobra.Command{
	Use:   "orcid <id>",
	Short: "Print the name registered for an ORCID",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := identifierOf(args[0], hub.SchemeORCID)
		if err != nil {
			return err
		}
		given, family := newServices(cfg).registry.NameFromORCID(cmd.Context(), id)
		if given == "" && family == "" {
			return notFound(cmd, "ORCID", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "given: %s\nfamily: %s\n", given, family)
		return nil
	},
}

var lookupRORCmd = &cobra.Command{
	Use:   "ror <id>",
	Short: "Print the name of a ROR organization",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := identifierOf(args[0], hub.SchemeROR)
		if err != nil {
			return err
		}
		name := newServices(cfg).registry.NameFromROR(cmd.Context(), id)
		if name == "" {
			return notFound(cmd, "ROR", id)
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

var lookupDOICmd = &cobra.Command{
	Use:   "doi <publication-id>",
	Short: "Print the DOI of a publication given by DOI, arXiv id, PMCID or PMID",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		doi := newServices(cfg).registry.DOIForPublication(cmd.Context(), args[0], "")
		if doi == "" {
			return notFound(cmd, "DOI", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), doi)
		return nil
	},
}

var lookupReferenceCmd = &cobra.Command{
	Use:   "reference <publication-id>",
	Short: "Print the formatted reference for a publication",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := reference.Identify(args[0]); !ok {
			return badUsage("%q is not a DOI, arXiv id, ISBN, PMCID or PMID", args[0])
		}
		text, err := newServices(cfg).refs.Reference(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if text == "" {
			return notFound(cmd, "reference", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	lookupCmd.AddCommand(lookupORCIDCmd)
	lookupCmd.AddCommand(lookupRORCmd)
	lookupCmd.AddCommand(lookupDOICmd)
	lookupCmd.AddCommand(lookupReferenceCmd)
}

// identifierOf normalizes text as an identifier of the given scheme.
func identifierOf(text string, scheme hub.Scheme) (string, error) {
	id := hub.NormalizeIdentifier(text, scheme)
	if id == "" {
		return "", badUsage("%q is not a valid %s", text, strings.ToUpper(string(scheme)))
	}
	return id, nil
}

// notFound reports an empty lookup. It is not an error: the crosswalk
// treats it the same way.
func notFound(cmd *cobra.Command, what, id string) error {
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "no %s record found for %s\n", what, id)
	return nil
}
