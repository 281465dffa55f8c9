// Package source holds the inputs the crosswalk reads: the parsed
// CodeMeta and CFF documents plus the platform repository, release and
// account objects.
package source

import (
	"context"
	"time"
)

// Bundle is everything known about one release. It is built once per run
// and not modified afterward. Any member may be nil or empty.
type Bundle struct {
	Machine  *Document // codemeta.json
	Citation *Document // CITATION.cff
	Repo     Repo
	Release  *Release
	Accounts AccountFetcher
}

// HasMetadata reports whether either metadata file was found.
func (b *Bundle) HasMetadata() bool {
	return b.Machine.Present() || b.Citation.Present()
}

// Account types reported by the platform.
const (
	AccountUser         = "User"
	AccountOrganization = "Organization"
	AccountBot          = "Bot"
)

// Account is a platform user or organization account.
type Account struct {
	Login   string `json:"login"`
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	HTMLURL string `json:"html_url,omitempty"`
}

// IsUser reports whether the account belongs to a person.
func (a Account) IsUser() bool {
	return a.Type == AccountUser
}

// AccountFetcher retrieves full account records by login.
type AccountFetcher interface {
	Account(ctx context.Context, login string) (*Account, error)
}

// License is the platform's detected license for a repository.
type License struct {
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
	URL    string `json:"url,omitempty"`
}

// RepoInfo is the repository record returned by a single platform call.
type RepoInfo struct {
	FullName    string    `json:"full_name"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	HTMLURL     string    `json:"html_url"`
	Homepage    string    `json:"homepage,omitempty"`
	Owner       Account   `json:"owner"`
	License     *License  `json:"license,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Topics      []string  `json:"topics,omitempty"`
	HasPages    bool      `json:"has_pages"`
	HasIssues   bool      `json:"has_issues"`
}

// PagesURL returns the conventional GitHub Pages address of the repository.
func (r RepoInfo) PagesURL() string {
	if r.Owner.Login == "" || r.Name == "" {
		return ""
	}
	return "https://" + r.Owner.Login + ".github.io/" + r.Name
}

// IssuesURL returns the web address of the repository's issue tracker.
func (r RepoInfo) IssuesURL() string {
	if r.HTMLURL == "" {
		return ""
	}
	return r.HTMLURL + "/issues"
}

// Repo is a platform repository. Info is available immediately; the other
// methods may make network calls.
type Repo interface {
	Info() RepoInfo
	Languages(ctx context.Context) ([]string, error)
	Files(ctx context.Context) ([]string, error)
	FileContent(ctx context.Context, path string) ([]byte, error)
	Contributors(ctx context.Context) ([]Account, error)
}

// Asset is a file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	URL         string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Release is a tagged platform release.
type Release struct {
	Tag         string    `json:"tag_name"`
	Name        string    `json:"name,omitempty"`
	Body        string    `json:"body,omitempty"`
	HTMLURL     string    `json:"html_url"`
	Author      Account   `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	PublishedAt time.Time `json:"published_at"`
	ZipballURL  string    `json:"zipball_url,omitempty"`
	TarballURL  string    `json:"tarball_url,omitempty"`
	Assets      []Asset   `json:"assets,omitempty"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
}
