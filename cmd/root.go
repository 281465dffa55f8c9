// Package cmd provides CLI commands for iga.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/iga/config"
	"github.com/lehigh-university-libraries/iga/httpclient"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/platform/github"
	"github.com/lehigh-university-libraries/iga/platform/gitlab"
)

// Exit codes.
const (
	ExitSuccess     = 0
	ExitInterrupted = 1
	ExitBadArgument = 2
	ExitFileError   = 3
	ExitGitHubError = 4
	ExitMissingData = 5
	ExitBadToken    = 6
	ExitInternal    = 7
)

var (
	configFile string
	verbose    bool

	settings = config.New()
	cfg      *config.Config
	cancel   context.CancelFunc = func() {}
)

// usageError marks a bad command line.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func badUsage(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// usageArgs reports argument count errors as bad usage.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// errInvalidRecord is returned when a record fails validation.
var errInvalidRecord = errors.New("invalid record")

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var (
		usage     usageError
		pathErr   *fs.PathError
		githubErr *github.Error
		gitlabErr *gitlab.Error
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitInterrupted
	case errors.As(err, &usage):
		return ExitBadArgument
	case errors.Is(err, httpclient.ErrUnauthorized):
		return ExitBadToken
	case errors.As(err, &githubErr), errors.As(err, &gitlabErr):
		return ExitGitHubError
	case errors.As(err, &pathErr), errors.Is(err, fs.ErrNotExist):
		return ExitFileError
	case errors.Is(err, hub.ErrMissingData), errors.Is(err, errInvalidRecord):
		return ExitMissingData
	default:
		return ExitInternal
	}
}

func setupLogger(level string) error {
	if verbose {
		level = "debug"
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return badUsage("log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           lvl,
	})
	slog.SetDefault(slog.New(logger))
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "iga",
	Short: "Build InvenioRDM records for software releases",
	Long: `iga builds an InvenioRDM metadata record for a GitHub or GitLab software
release.

It reads the repository's codemeta.json and CITATION.cff at the release,
falls back to repository and release data from the hosting platform, and normalizes
people, organizations, identifiers and licenses along the way.

Examples:
  iga record https://github.com/caltechlibrary/iga/releases/tag/v1.2.0
  iga record https://code.jlab.org/physdiv/jrdb/inveniordm_jlab/-/releases/0.1.0
  iga record --codemeta codemeta.json --cff CITATION.cff -o record.json
  iga validate record.json
  iga audit https://github.com/caltechlibrary/iga/releases/tag/v1.2.0
  iga id https://doi.org/10.22002/abcde-12345`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Read(settings, configFile)
	if err != nil {
		return usageError{err}
	}
	if err := setupLogger(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.File != "" {
		slog.Debug("using config file", "file", cfg.File)
	}

	ctx := cmd.Context()
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
	}
	cmd.SetContext(ctx)
	return nil
}

// Execute runs the root command and exits with the mapped status.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(ExitCode(err))
}

func bindFlag(key, flag string) {
	if err := settings.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: ~/.iga.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.Duration("timeout", 0, "Overall time limit, such as 2m (default: 5m)")
	flags.String("token", "", "GitHub access token (default: $IGA_GITHUB_TOKEN or $GITHUB_TOKEN)")
	flags.Bool("include-all", false, "Also use repository data when metadata files exist")
	flags.String("provider-policy", "", "How to treat codemeta provider: ignore or contributor")
	flags.String("publisher", "", "Publisher recorded in the record")
	flags.Bool("gitlab", false, "Read release URLs from GitLab (default: $IGA_GITLAB or $GITLAB)")
	flags.String("gitlab-token", "", "GitLab access token (default: $IGA_GITLAB_TOKEN or $GITLAB_TOKEN)")

	bindFlag(config.KeyLogLevel, "log-level")
	bindFlag(config.KeyTimeout, "timeout")
	bindFlag(config.KeyGitHubToken, "token")
	bindFlag(config.KeyIncludeAll, "include-all")
	bindFlag(config.KeyProviderPolicy, "provider-policy")
	bindFlag(config.KeyPublisher, "publisher")
	bindFlag(config.KeyGitLab, "gitlab")
	bindFlag(config.KeyGitLabToken, "gitlab-token")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(idCmd)
	rootCmd.AddCommand(vocabCmd)
}
