package source

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentTracksReads(t *testing.T) {
	d := NewDocument("codemeta", map[string]any{
		"@context": "https://w3id.org/codemeta/3.0",
		"name":     "iga",
		"keywords": []any{"a", "b"},
		"funder":   map[string]any{"name": "NSF"},
		"empty":    "",
	})

	assert.Equal(t, "iga", d.Text("name"))
	assert.Len(t, d.List("keywords"), 2)

	unread := d.Unread()
	assert.Equal(t, map[string]any{"funder": map[string]any{"name": "NSF"}}, unread)
}

func TestNilDocumentIsEmpty(t *testing.T) {
	var d *Document
	assert.False(t, d.Present())
	assert.Nil(t, d.Get("name"))
	assert.Equal(t, "", d.Text("name"))
	assert.False(t, d.Has("name"))
	assert.Nil(t, d.Unread())
}

func TestBundleHasMetadata(t *testing.T) {
	assert.False(t, (&Bundle{}).HasMetadata())
	assert.False(t, (&Bundle{Machine: NewDocument("codemeta", nil)}).HasMetadata())
	assert.True(t, (&Bundle{Citation: NewDocument("cff", map[string]any{"title": "x"})}).HasMetadata())
}

func TestRepoInfoURLs(t *testing.T) {
	info := RepoInfo{Name: "iga", HTMLURL: "https://github.com/caltechlibrary/iga", Owner: Account{Login: "caltechlibrary"}}
	assert.Equal(t, "https://caltechlibrary.github.io/iga", info.PagesURL())
	assert.Equal(t, "https://github.com/caltechlibrary/iga/issues", info.IssuesURL())
	assert.Equal(t, "", RepoInfo{}.PagesURL())
}

func TestStaticRepo(t *testing.T) {
	r := &StaticRepo{
		FileNames: []string{"README.md"},
		FileData:  map[string][]byte{"LICENSE": []byte("MIT")},
	}
	names, err := r.Files(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"LICENSE", "README.md"}, names)

	_, err = r.FileContent(context.Background(), "README.md")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStaticAccounts(t *testing.T) {
	accts := StaticAccounts{"mhucka": {Login: "mhucka", Type: AccountUser, Name: "Michael Hucka"}}
	a, err := accts.Account(context.Background(), "mhucka")
	require.NoError(t, err)
	assert.True(t, a.IsUser())

	_, err = accts.Account(context.Background(), "nobody")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
