package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lehigh-university-libraries/iga/hub"
)

var (
	auditSources  sourceFlags
	auditOutput   string
	auditJSON     bool
	auditExamples int
)

// auditCmd reports source terms the crosswalk did not map.
var auditCmd = &cobra.Command{
	Use:   "audit [release-url]",
	Short: "List codemeta.json and CITATION.cff terms that were not mapped",
	Long: `Build the record for a release and report every source term that
no field used. Terms that usually carry mappable data, such as keywords or
funding written under an unexpected key, are flagged.

With --json the unmapped terms are written as one JSON object keyed by
"<source>.<term>".

Examples:
  iga audit https://github.com/caltechlibrary/iga/releases/tag/v1.2.0
  iga audit --codemeta codemeta.json --cff CITATION.cff --json`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runAudit,
}

// AuditReport lists the unmapped terms of one build.
type AuditReport struct {
	Title      string      `json:"title"`
	Terms      []TermStats `json:"terms"`
	Candidates []string    `json:"promotion_candidates,omitempty"`
}

// TermStats describes one unmapped term.
type TermStats struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	Example string `json:"example,omitempty"`
}

func init() {
	auditSources.register(auditCmd.Flags())
	auditCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "Output file (default: stdout)")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Output the unmapped terms as JSON")
	auditCmd.Flags().IntVarP(&auditExamples, "example-length", "e", 60, "Longest example value shown")
}

func runAudit(cmd *cobra.Command, args []string) error {
	result, err := buildRecord(cmd.Context(), &auditSources, args)
	if err != nil {
		return err
	}

	var output []byte
	if auditJSON {
		extra := result.record.Extra
		if extra == nil {
			extra = &structpb.Struct{}
		}
		output, err = protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(extra)
		if err != nil {
			return &hub.InternalError{Op: "marshal unmapped terms", Err: err}
		}
	} else {
		output = []byte(formatAuditReport(auditRecord(result.record, auditExamples)))
	}

	if auditOutput != "" {
		if err := os.WriteFile(auditOutput, output, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}

func auditRecord(rec *hub.Record, maxExample int) *AuditReport {
	report := &AuditReport{Title: rec.Title}

	fields := hub.GetExtraFields(rec)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		stats := TermStats{Key: k, Type: getValueTypeName(fields[k])}
		if example := getValueString(fields[k]); len([]rune(example)) <= maxExample {
			stats.Example = example
		}
		report.Terms = append(report.Terms, stats)
	}

	opts := hub.ValidationOptions{StrictExtras: true}
	for _, w := range hub.Validate(rec, opts).Warnings {
		report.Candidates = append(report.Candidates, w.Error())
	}
	sort.Strings(report.Candidates)
	return report
}

func getValueTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func getValueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64, bool:
		return fmt.Sprintf("%v", val)
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

func formatAuditReport(report *AuditReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Unmapped source terms for %s\n\n", report.Title)
	if len(report.Terms) == 0 {
		sb.WriteString("Every source term was mapped.\n")
		return sb.String()
	}

	if len(report.Candidates) > 0 {
		sb.WriteString("Likely mappable data:\n")
		for _, c := range report.Candidates {
			fmt.Fprintf(&sb, "  • %s\n", c)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Terms:\n")
	for _, t := range report.Terms {
		fmt.Fprintf(&sb, "  %s (%s)\n", t.Key, t.Type)
		if t.Example != "" {
			fmt.Fprintf(&sb, "    example: %s\n", t.Example)
		}
	}
	return sb.String()
}
