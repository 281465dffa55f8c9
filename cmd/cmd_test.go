package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/iga/httpclient"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/platform/github"
	"github.com/lehigh-university-libraries/iga/platform/gitlab"
)

// execute runs the command line with fresh flag state and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("IGA_LOG_LEVEL", "error")
	recordSources, auditSources = sourceFlags{}, sourceFlags{}
	recordOutput, auditOutput = "", ""
	recordBare, recordCompact, auditJSON = false, false, false
	auditExamples = 60
	validateStrict, validateVerbose = false, false
	idScheme = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	cancel()
	return out.String(), err
}

const testCodeMeta = `{
  "@context": "https://w3id.org/codemeta/3.0",
  "@type": "SoftwareSourceCode",
  "name": "IGA",
  "version": "1.2.0",
  "description": "InvenioRDM GitHub Archiver",
  "author": [{"@type": "Person", "givenName": "Jane", "familyName": "Doe"}],
  "license": "https://spdx.org/licenses/BSD-3-Clause",
  "datePublished": "2023-03-01",
  "keywords": ["archiving", "software"],
  "applicationCategory": "Archiving"
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{fmt.Errorf("fetching: %w", context.Canceled), ExitInterrupted},
		{badUsage("bad flag"), ExitBadArgument},
		{&os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}, ExitFileError},
		{&github.Error{Op: "repo", Err: httpclient.ErrNotFound}, ExitGitHubError},
		{&github.Error{Op: "repo", Err: fmt.Errorf("%w: status 401", httpclient.ErrUnauthorized)}, ExitBadToken},
		{&gitlab.Error{Op: "project", Err: httpclient.ErrNotFound}, ExitGitHubError},
		{fmt.Errorf("building creators: %w", &hub.MissingDataError{Field: "creators"}), ExitMissingData},
		{fmt.Errorf("1 of 1 records: %w", errInvalidRecord), ExitMissingData},
		{&hub.InternalError{Op: "decode", Err: errors.New("boom")}, ExitInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestRecordFromLocalFiles(t *testing.T) {
	cm := writeFile(t, "codemeta.json", testCodeMeta)
	out := filepath.Join(t.TempDir(), "record.json")

	_, err := execute(t, "record", "--codemeta", cm, "--tag", "v1.2.0", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"metadata"`)
	assert.Contains(t, string(data), `"title": "IGA – v1.2.0"`)
	assert.Contains(t, string(data), `"id": "bsd-3-clause"`)

	stdout, err := execute(t, "validate", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func TestRecordBareToStdout(t *testing.T) {
	cm := writeFile(t, "codemeta.json", testCodeMeta)
	t.Setenv("IGA_PUBLISHER", "Example Repository")
	stdout, err := execute(t, "record", "--codemeta", cm, "--bare", "--compact")
	require.NoError(t, err)
	assert.NotContains(t, stdout, `"metadata"`)
	assert.Contains(t, stdout, `"publisher":"Example Repository"`)
	assert.Contains(t, stdout, `"publication_date":"2023-03-01"`)
}

func TestRecordUsageErrors(t *testing.T) {
	_, err := execute(t, "record")
	assert.Equal(t, ExitBadArgument, ExitCode(err))

	_, err = execute(t, "record", "https://example.com/not/a/release")
	assert.Equal(t, ExitBadArgument, ExitCode(err))

	_, err = execute(t, "record", "--codemeta", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, ExitFileError, ExitCode(err))

	_, err = execute(t, "record", "--no-such-flag")
	assert.Equal(t, ExitBadArgument, ExitCode(err))
}

func TestRecordFromGitLabRelease(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "physdiv/jrdb/iga", r.PathValue("id"))
		assert.Equal(t, "glpat-test", r.Header.Get("PRIVATE-TOKEN"))
		_, _ = w.Write([]byte(`{
			"path": "iga",
			"path_with_namespace": "physdiv/jrdb/iga",
			"web_url": "https://code.example.org/physdiv/jrdb/iga",
			"default_branch": "main",
			"namespace": {"name": "JRDB", "full_path": "physdiv/jrdb", "kind": "group"}
		}`))
	})
	mux.HandleFunc("GET /projects/{id}/releases/{tag}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v1.2.0", "name": "1.2.0", "released_at": "2023-03-01T12:00:00Z",
			"_links": {"self": "https://code.example.org/physdiv/jrdb/iga/-/releases/v1.2.0"}}`))
	})
	mux.HandleFunc("GET /projects/{id}/repository/tree", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"path": "codemeta.json", "type": "blob"}]`))
	})
	mux.HandleFunc("GET /projects/{id}/repository/files/{path}/raw", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "codemeta.json", r.PathValue("path"))
		assert.Equal(t, "v1.2.0", r.URL.Query().Get("ref"))
		_, _ = w.Write([]byte(testCodeMeta))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Setenv("IGA_GITLAB_API_URL", srv.URL)
	t.Setenv("IGA_GITLAB_TOKEN", "glpat-test")
	stdout, err := execute(t, "record", "--bare", "https://code.example.org/physdiv/jrdb/iga/-/releases/v1.2.0")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"title": "IGA – v1.2.0"`)
	assert.Contains(t, stdout, `"family_name": "Doe"`)
}

func TestRecordWithoutCreators(t *testing.T) {
	cm := writeFile(t, "codemeta.json", `{"name": "Orphan"}`)
	_, err := execute(t, "record", "--codemeta", cm)
	require.Error(t, err)
	assert.Equal(t, ExitMissingData, ExitCode(err))
}

func TestValidateInvalidRecord(t *testing.T) {
	rec := writeFile(t, "record.json", `{"metadata": {"title": "No creators", "publication_date": "2023-3-1"}}`)
	stdout, err := execute(t, "validate", rec)
	require.Error(t, err)
	assert.Equal(t, ExitMissingData, ExitCode(err))
	assert.Contains(t, stdout, "is invalid")
	assert.Contains(t, stdout, "creators is required")
	assert.Contains(t, stdout, "publication_date")
}

func TestValidateRejectsSourceFiles(t *testing.T) {
	cm := writeFile(t, "codemeta.json", testCodeMeta)
	_, err := execute(t, "validate", "--strict", cm)
	require.Error(t, err)
	assert.Equal(t, ExitBadArgument, ExitCode(err))
	assert.Contains(t, err.Error(), "looks like CodeMeta")
}

func TestAudit(t *testing.T) {
	cm := writeFile(t, "codemeta.json", testCodeMeta)

	stdout, err := execute(t, "audit", "--codemeta", cm)
	require.NoError(t, err)
	assert.Contains(t, stdout, "codemeta.applicationCategory (string)")
	assert.Contains(t, stdout, "example: Archiving")

	stdout, err = execute(t, "audit", "--codemeta", cm, "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"codemeta.applicationCategory"`)
	assert.Contains(t, stdout, `"Archiving"`)
}

func TestID(t *testing.T) {
	stdout, err := execute(t, "id", "https://doi.org/10.22002/abcde-12345")
	require.NoError(t, err)
	assert.Equal(t, "scheme: doi\nidentifier: 10.22002/abcde-12345\nuri: https://doi.org/10.22002/abcde-12345\n", stdout)

	stdout, err = execute(t, "id", "--scheme", "ror", "https://ror.org/05DXPS055")
	require.NoError(t, err)
	assert.Contains(t, stdout, "identifier: 05dxps055\n")

	_, err = execute(t, "id", "not an identifier")
	assert.Equal(t, ExitBadArgument, ExitCode(err))

	_, err = execute(t, "id", "--scheme", "nope", "123")
	assert.Equal(t, ExitBadArgument, ExitCode(err))
}

func TestVocab(t *testing.T) {
	stdout, err := execute(t, "vocab")
	require.NoError(t, err)
	assert.Contains(t, stdout, "contributorroles")
	assert.Contains(t, stdout, "licenses")

	stdout, err = execute(t, "vocab", "resourcetypes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "software")

	_, err = execute(t, "vocab", "colors")
	assert.Equal(t, ExitBadArgument, ExitCode(err))
}

func TestBadConfigValue(t *testing.T) {
	t.Setenv("IGA_PROVIDER_POLICY", "owner")
	_, err := execute(t, "vocab")
	assert.Equal(t, ExitBadArgument, ExitCode(err))
}
