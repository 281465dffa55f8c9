package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/iga/format"
	"github.com/lehigh-university-libraries/iga/hub"
)

var (
	recordSources sourceFlags
	recordOutput  string
	recordCompact bool
	recordBare    bool
)

var recordCmd = &cobra.Command{
	Use:   "record [release-url]",
	Short: "Build the InvenioRDM record for a release",
	Long: `Build the InvenioRDM metadata record for a GitHub release.

The record is assembled from the repository's codemeta.json and
CITATION.cff at the release tag, with repository and release data from
GitHub filling the gaps. Local metadata files can be used instead of a
release with --codemeta and --cff, or --dir for a checkout.

Output defaults to stdout.

Examples:
  iga record https://github.com/caltechlibrary/iga/releases/tag/v1.2.0
  iga record https://github.com/caltechlibrary/iga/releases/tag/v1.2.0 --include-all -o record.json
  iga record --codemeta codemeta.json --tag v1.2.0
  iga record --dir . --tag v1.2.0 --bare`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runRecord,
}

func init() {
	recordSources.register(recordCmd.Flags())
	recordCmd.Flags().StringVarP(&recordOutput, "output", "o", "", "Output file (default: stdout)")
	recordCmd.Flags().BoolVar(&recordCompact, "compact", false, "Write JSON without indentation")
	recordCmd.Flags().BoolVar(&recordBare, "bare", false, "Write only the metadata object, without the enclosing record")
}

func runRecord(cmd *cobra.Command, args []string) (err error) {
	result, err := buildRecord(cmd.Context(), &recordSources, args)
	if err != nil {
		return err
	}
	if result.record.Extra != nil && len(result.record.Extra.Fields) > 0 {
		slog.Info("some source terms were not mapped; run iga audit to list them", "count", len(result.record.Extra.Fields))
	}

	serializer, err := invenioSerializer()
	if err != nil {
		return err
	}

	var output io.Writer = cmd.OutOrStdout()
	if recordOutput != "" {
		f, createErr := os.Create(recordOutput)
		if createErr != nil {
			return fmt.Errorf("creating output file: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	}

	opts := &format.SerializeOptions{Pretty: !recordCompact, Bare: recordBare}
	if err := serializer.Serialize(output, []*hub.Record{result.record}, opts); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if recordOutput != "" {
		slog.Info("wrote record", "file", recordOutput, "title", result.record.Title)
	}
	return nil
}
