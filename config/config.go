// Package config loads iga settings from .env files, IGA_* environment
// variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/iga/crosswalk"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "IGA"

// Setting keys. Each is also read from IGA_<KEY> in upper case.
const (
	KeyGitHubToken    = "github_token"
	KeyIncludeAll     = "include_all"
	KeyProviderPolicy = "provider_policy"
	KeyPublisher      = "publisher"
	KeyTimeout        = "timeout"
	KeyORCIDURL       = "orcid_url"
	KeyRORURL         = "ror_url"
	KeyIDConvURL      = "idconv_url"
	KeyDOIURL         = "doi_url"
	KeyGitHubAPIURL   = "github_api_url"
	KeyGitLab         = "gitlab"
	KeyGitLabToken    = "gitlab_token"
	KeyGitLabAPIURL   = "gitlab_api_url"
	KeyUserAgent      = "user_agent"
	KeyLogLevel       = "log_level"
)

// Config holds the resolved settings.
type Config struct {
	GitHubToken    string
	IncludeAll     bool
	ProviderPolicy crosswalk.ProviderPolicy
	Publisher      string
	Timeout        time.Duration

	ORCIDURL     string
	RORURL       string
	IDConvURL    string
	DOIURL       string
	GitHubAPIURL string
	UserAgent    string

	// GitLab treats every release URL as a GitLab one. Addresses of the
	// form .../-/releases/<tag> are read from GitLab either way.
	GitLab       bool
	GitLabToken  string
	GitLabAPIURL string

	LogLevel string

	// File is the configuration file that was read, if any.
	File string
}

// envFiles are loaded in order; variables already set are not replaced,
// so .env.local values only fill what .env left unset.
var envFiles = []string{".env", ".env.local"}

// Load reads the configuration with no command flags bound.
func Load(path string) (*Config, error) {
	return Read(New(), path)
}

// Read loads the .env files and the configuration file into v and builds
// the Config. An empty path searches for .iga.yaml in the home and working
// directories; a missing file there is not an error, but a named file that
// cannot be read is.
func Read(v *viper.Viper, path string) (*Config, error) {
	loadEnvFiles()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".iga")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return FromViper(v)
}

// New returns a viper instance with iga's defaults and environment
// bindings. Callers may bind command flags to it before Read.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Tokens are also taken from the variables the platforms' own tools use.
	_ = v.BindEnv(KeyGitHubToken, EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv(KeyLogLevel, EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv(KeyGitLab, EnvPrefix+"_GITLAB", "GITLAB")
	_ = v.BindEnv(KeyGitLabToken, EnvPrefix+"_GITLAB_TOKEN", "GITLAB_TOKEN")

	v.SetDefault(KeyProviderPolicy, string(crosswalk.ProviderIgnore))
	v.SetDefault(KeyPublisher, crosswalk.DefaultPublisher)
	v.SetDefault(KeyTimeout, 5*time.Minute)
	v.SetDefault(KeyUserAgent, "iga")
	v.SetDefault(KeyLogLevel, "info")
	return v
}

// FromViper builds a Config from a prepared viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	policy, err := crosswalk.ParseProviderPolicy(v.GetString(KeyProviderPolicy))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyProviderPolicy, err)
	}
	timeout := v.GetDuration(KeyTimeout)
	if timeout < 0 {
		return nil, fmt.Errorf("%s: negative duration %s", KeyTimeout, timeout)
	}

	return &Config{
		GitHubToken:    strings.TrimSpace(v.GetString(KeyGitHubToken)),
		IncludeAll:     v.GetBool(KeyIncludeAll),
		ProviderPolicy: policy,
		Publisher:      v.GetString(KeyPublisher),
		Timeout:        timeout,
		ORCIDURL:       v.GetString(KeyORCIDURL),
		RORURL:         v.GetString(KeyRORURL),
		IDConvURL:      v.GetString(KeyIDConvURL),
		DOIURL:         v.GetString(KeyDOIURL),
		GitHubAPIURL:   v.GetString(KeyGitHubAPIURL),
		UserAgent:      v.GetString(KeyUserAgent),
		GitLab:         v.GetBool(KeyGitLab),
		GitLabToken:    strings.TrimSpace(v.GetString(KeyGitLabToken)),
		GitLabAPIURL:   v.GetString(KeyGitLabAPIURL),
		LogLevel:       v.GetString(KeyLogLevel),
		File:           v.ConfigFileUsed(),
	}, nil
}

func loadEnvFiles() {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
}
