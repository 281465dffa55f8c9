package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryLoadsEmbedded(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	for _, name := range []string{IdentifierTypes, CreatorRoles, ContributorRoles, RelationTypes, ResourceTypes, DescriptionTypes, DateTypes, TitleTypes, Licenses} {
		_, ok := r.Get(name)
		assert.True(t, ok, "missing vocabulary %s", name)
	}
	assert.Contains(t, r.List(), Licenses)
}

func TestHas(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	assert.True(t, r.Has(IdentifierTypes, "doi"))
	assert.True(t, r.Has(IdentifierTypes, "arxiv"))
	assert.False(t, r.Has(IdentifierTypes, "orcid"))
	assert.True(t, r.Has(ContributorRoles, "rightsholder"))
	assert.True(t, r.Has(RelationTypes, "isvariantformof"))
	assert.False(t, r.Has("nope", "doi"))
}

func TestMatch(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	term, ok := r.Match(ResourceTypes, "Dataset")
	require.True(t, ok)
	assert.Equal(t, "dataset", term.ID)

	term, ok = r.Match(ContributorRoles, "Rights holders")
	require.True(t, ok)
	assert.Equal(t, "rightsholder", term.ID)

	_, ok = r.Match(ResourceTypes, "spreadsheet")
	assert.False(t, ok)
}

func TestLicense(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	mit, ok := r.License("MIT")
	require.True(t, ok)
	assert.Equal(t, "MIT License", mit.Title)
	assert.Equal(t, "https://spdx.org/licenses/MIT", mit.URL)
	assert.True(t, mit.InInvenio())

	bsd, ok := r.License("https://opensource.org/licenses/BSD-3-Clause.html")
	require.True(t, ok)
	assert.Equal(t, "BSD-3-Clause", bsd.ID)

	cc, ok := r.License("http://creativecommons.org/licenses/by/4.0/")
	require.True(t, ok)
	assert.Equal(t, "CC-BY-4.0", cc.ID)

	gpl, ok := r.License("gpl-3.0")
	require.True(t, ok)
	assert.False(t, gpl.InInvenio())

	_, ok = r.License("Some Custom License")
	assert.False(t, ok)
}

func TestLoadFromDirectoryOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "name: resourcetypes\nterms:\n  - {id: software, title: Software}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resourcetypes.yaml"), []byte(content), 0o644))

	r, err := NewRegistry()
	require.NoError(t, err)
	require.NoError(t, r.LoadFromDirectory(dir))

	assert.True(t, r.Has(ResourceTypes, "software"))
	assert.False(t, r.Has(ResourceTypes, "dataset"))
}
