package gitlab

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/lehigh-university-libraries/iga/source"
)

const (
	pageSize = 100
	maxPages = 20
)

// botNameWords end the display names of service accounts.
var botNameWords = []string{"bot", "daemon", "dependabot"}

// Repo is a GitLab project viewed at one git ref, normally a release tag.
type Repo struct {
	client *Client
	info   source.RepoInfo
	id     string
	ref    string
}

var _ source.Repo = (*Repo)(nil)

// Info returns the project record.
func (r *Repo) Info() source.RepoInfo {
	return r.info
}

// Ref returns the git ref that file access uses.
func (r *Repo) Ref() string {
	return r.ref
}

// AtRef returns a copy of r whose file access reads the given ref.
func (r *Repo) AtRef(ref string) *Repo {
	dup := *r
	if ref != "" {
		dup.ref = ref
	}
	return &dup
}

func (r *Repo) endpoint(format string, args ...any) string {
	return r.client.projectURL(r.id) + fmt.Sprintf(format, args...)
}

// Languages returns the project's languages, largest share first.
func (r *Repo) Languages(ctx context.Context) ([]string, error) {
	var shares map[string]float64
	if err := r.client.http.Get(ctx, r.endpoint("/languages"), &shares); err != nil {
		return nil, &Error{Op: "languages " + r.id, Err: err}
	}

	names := make([]string, 0, len(shares))
	for name := range shares {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(shares[b], shares[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names, nil
}

// Files lists the paths at the top level of the repository tree.
func (r *Repo) Files(ctx context.Context) ([]string, error) {
	var files []string
	next := r.endpoint("/repository/tree?ref=%s&per_page=%d", url.QueryEscape(r.ref), pageSize)
	for page := 0; next != "" && page < maxPages; page++ {
		var entries []treeEntry
		var err error
		if next, err = r.client.http.GetPage(ctx, next, nil, &entries); err != nil {
			return nil, &Error{Op: "tree " + r.id + "@" + r.ref, Err: err}
		}
		for _, e := range entries {
			files = append(files, e.Path)
		}
	}
	return files, nil
}

// FileContent returns the raw bytes of a file at the project's ref.
func (r *Repo) FileContent(ctx context.Context, path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "/")
	endpoint := r.endpoint("/repository/files/%s/raw?ref=%s", url.PathEscape(path), url.QueryEscape(r.ref))
	data, err := r.client.http.GetBytes(ctx, endpoint, nil)
	if err != nil {
		return nil, &Error{Op: "file " + path, Err: err}
	}
	return data, nil
}

// FileURL returns the web address of a file at the project's ref.
func (r *Repo) FileURL(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return r.info.HTMLURL + "/-/blob/" + url.PathEscape(r.ref) + "/" + strings.Join(parts, "/")
}

// Contributors lists the commit authors of the project, most commits
// first. GitLab groups them by name and email and reports no username, so
// each account carries a display name only. Names that look like service
// accounts are left out.
func (r *Repo) Contributors(ctx context.Context) ([]source.Account, error) {
	var all []contributorResponse
	next := r.endpoint("/repository/contributors?order_by=commits&sort=desc&per_page=%d", pageSize)
	for page := 0; next != "" && page < maxPages; page++ {
		var data []contributorResponse
		var err error
		if next, err = r.client.http.GetPage(ctx, next, nil, &data); err != nil {
			return nil, &Error{Op: "contributors " + r.id, Err: err}
		}
		all = append(all, data...)
	}

	seen := make(map[string]bool)
	var result []source.Account
	for _, c := range all {
		name := strings.TrimSpace(c.Name)
		key := strings.ToLower(name)
		if name == "" || seen[key] || probableBot(key) {
			continue
		}
		seen[key] = true
		result = append(result, source.Account{Type: source.AccountUser, Name: name})
	}
	return result, nil
}

func probableBot(name string) bool {
	if strings.HasSuffix(name, "[bot]") {
		return true
	}
	words := strings.Fields(name)
	return len(words) > 0 && slices.Contains(botNameWords, words[len(words)-1])
}
