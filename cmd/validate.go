package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/iga/format"
	"github.com/lehigh-university-libraries/iga/hub"
)

var (
	validateStrict  bool
	validateVerbose bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [record.json]",
	Short: "Check InvenioRDM records for required fields and well-formed values",
	Long: `Validate InvenioRDM record JSON, such as the output of iga record.

Required fields, identifier forms, dates and person or organization names
are checked. Input defaults to stdin.

Examples:
  iga validate record.json
  iga record --codemeta codemeta.json | iga validate
  iga validate --verbose record.json`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Require the enclosing {\"metadata\": ...} object")
	validateCmd.Flags().BoolVar(&validateVerbose, "verbose-records", false, "Print a summary of each record")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	var input io.Reader
	inputName := "stdin"
	if len(args) == 1 {
		f, openErr := os.Open(args[0])
		if openErr != nil {
			return fmt.Errorf("opening input file: %w", openErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
		inputName = args[0]
	} else {
		input = cmd.InOrStdin()
	}

	parser, err := format.GetParser("invenio")
	if err != nil {
		return err
	}
	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputName, err)
	}
	records, err := parser.Parse(bytes.NewReader(data), &format.ParseOptions{SourceName: inputName, Strict: validateStrict})
	if err != nil {
		if f, detectErr := format.DetectFromContent(data); detectErr == nil && f.Name() != parser.Name() {
			return badUsage("%s looks like %s, not an InvenioRDM record", inputName, f.Description())
		}
		return usageError{fmt.Errorf("reading %s: %w", inputName, err)}
	}
	if len(records) == 0 {
		return usageError{fmt.Errorf("%s: no records", inputName)}
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for i, r := range records {
		result := hub.Validate(r, hub.DefaultValidationOptions())
		label := fmt.Sprintf("record %d", i+1)
		if r.Title != "" {
			label += fmt.Sprintf(" (%s)", truncate(r.Title, 60))
		}
		if result.IsValid() {
			fmt.Fprintf(out, "✓ %s is valid\n", label)
		} else {
			invalid++
			fmt.Fprintf(out, "✗ %s is invalid\n", label)
		}
		for _, e := range result.Errors {
			fmt.Fprintf(out, "    error: %s\n", e.Error())
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "    warning: %s\n", w.Error())
		}
		if validateVerbose {
			printSummary(out, r)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d records: %w", invalid, len(records), errInvalidRecord)
	}
	return nil
}

func printSummary(w io.Writer, r *hub.Record) {
	fmt.Fprintf(w, "    Title: %s\n", truncate(r.Title, 60))
	fmt.Fprintf(w, "    Version: %s\n", r.Version)
	fmt.Fprintf(w, "    Creators: %d\n", len(r.Creators))
	fmt.Fprintf(w, "    Contributors: %d\n", len(r.Contributors))
	fmt.Fprintf(w, "    Dates: %d\n", len(r.Dates))
	fmt.Fprintf(w, "    Subjects: %d\n", len(r.Subjects))
	fmt.Fprintf(w, "    Identifiers: %d\n", len(r.Identifiers))
	fmt.Fprintf(w, "    Related identifiers: %d\n", len(r.RelatedIdentifiers))
	if r.ResourceType != nil {
		fmt.Fprintf(w, "    Resource Type: %s\n", r.ResourceType.ID)
	}
	if doi := hub.GetDOI(r); doi != nil {
		fmt.Fprintf(w, "    DOI: %s\n", doi.Identifier)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
