package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/iga/crosswalk"
)

func TestDefaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("IGA_GITHUB_TOKEN", "")

	cfg, err := FromViper(New())
	require.NoError(t, err)
	assert.Equal(t, crosswalk.ProviderIgnore, cfg.ProviderPolicy)
	assert.Equal(t, crosswalk.DefaultPublisher, cfg.Publisher)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Equal(t, "iga", cfg.UserAgent)
	assert.False(t, cfg.IncludeAll)
	assert.Empty(t, cfg.GitHubToken)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("IGA_GITHUB_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "ghp_fallback")
	t.Setenv("IGA_INCLUDE_ALL", "true")
	t.Setenv("IGA_PROVIDER_POLICY", "contributor")
	t.Setenv("IGA_TIMEOUT", "90s")
	t.Setenv("IGA_ROR_URL", "http://localhost:9999/organizations")

	cfg, err := FromViper(New())
	require.NoError(t, err)
	assert.Equal(t, "ghp_fallback", cfg.GitHubToken)
	assert.True(t, cfg.IncludeAll)
	assert.Equal(t, crosswalk.ProviderContributor, cfg.ProviderPolicy)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "http://localhost:9999/organizations", cfg.RORURL)

	t.Setenv("IGA_GITHUB_TOKEN", "ghp_preferred")
	cfg, err = FromViper(New())
	require.NoError(t, err)
	assert.Equal(t, "ghp_preferred", cfg.GitHubToken)
}

func TestGitLabSettings(t *testing.T) {
	t.Setenv("IGA_GITLAB", "")
	t.Setenv("IGA_GITLAB_TOKEN", "")
	t.Setenv("GITLAB", "true")
	t.Setenv("GITLAB_TOKEN", "glpat-fallback")
	t.Setenv("IGA_GITLAB_API_URL", "https://code.jlab.org/api/v4")

	cfg, err := FromViper(New())
	require.NoError(t, err)
	assert.True(t, cfg.GitLab)
	assert.Equal(t, "glpat-fallback", cfg.GitLabToken)
	assert.Equal(t, "https://code.jlab.org/api/v4", cfg.GitLabAPIURL)

	t.Setenv("IGA_GITLAB", "false")
	cfg, err = FromViper(New())
	require.NoError(t, err)
	assert.False(t, cfg.GitLab, "the prefixed variable wins")
}

func TestBadProviderPolicy(t *testing.T) {
	t.Setenv("IGA_PROVIDER_POLICY", "creator")
	_, err := FromViper(New())
	assert.ErrorContains(t, err, KeyProviderPolicy)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("IGA_PUBLISHER", "")
	path := filepath.Join(t.TempDir(), "iga.yaml")
	require.NoError(t, os.WriteFile(path, []byte("publisher: Example Repository\ninclude_all: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Example Repository", cfg.Publisher)
	assert.True(t, cfg.IncludeAll)
	assert.Equal(t, path, cfg.File)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
