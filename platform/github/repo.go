package github

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
	// maxContributorPages bounds the listing of very large projects.
	maxContributorPages = 20
)

// Repo is a GitHub repository viewed at one git ref, normally a release tag.
type Repo struct {
	client *Client
	info   source.RepoInfo
	ref    string
}

var _ source.Repo = (*Repo)(nil)

// Info returns the repository record.
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
	return r.client.baseURL + "/repos/" + r.info.FullName + fmt.Sprintf(format, args...)
}

// Languages returns the repository's languages, largest first.
func (r *Repo) Languages(ctx context.Context) ([]string, error) {
	var sizes map[string]int
	if err := r.client.http.Get(ctx, r.endpoint("/languages"), &sizes); err != nil {
		return nil, &Error{Op: "languages " + r.info.FullName, Err: err}
	}

	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(sizes[b], sizes[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names, nil
}

// Files lists the paths at the top level of the repository tree.
func (r *Repo) Files(ctx context.Context) ([]string, error) {
	var tree treeResponse
	if err := r.client.http.Get(ctx, r.endpoint("/git/trees/%s", url.PathEscape(r.ref)), &tree); err != nil {
		return nil, &Error{Op: "tree " + r.info.FullName + "@" + r.ref, Err: err}
	}

	files := make([]string, 0, len(tree.Tree))
	for _, entry := range tree.Tree {
		files = append(files, entry.Path)
	}
	return files, nil
}

// FileContent returns the raw bytes of a file at the repository's ref.
func (r *Repo) FileContent(ctx context.Context, path string) ([]byte, error) {
	endpoint := r.endpoint("/contents/%s?ref=%s", escapePath(path), url.QueryEscape(r.ref))
	data, err := r.client.http.GetBytes(ctx, endpoint, map[string]string{
		"Accept": "application/vnd.github.raw+json",
	})
	if err != nil {
		return nil, &Error{Op: "file " + path, Err: err}
	}
	return data, nil
}

// FileURL returns the web address of a file at the repository's ref.
func (r *Repo) FileURL(path string) string {
	return r.info.HTMLURL + "/blob/" + r.ref + "/" + escapePath(path)
}

// Contributors lists the accounts that committed to the repository,
// excluding accounts GitHub marks as bots. Every page of the listing is
// read. The listing carries only logins; use Client.Account for names.
func (r *Repo) Contributors(ctx context.Context) ([]source.Account, error) {
	var result []source.Account
	next := r.endpoint("/contributors?per_page=%d", pageSize)
	for page := 0; next != "" && page < maxContributorPages; page++ {
		var data []contributorResponse
		var err error
		if next, err = r.client.http.GetPage(ctx, next, nil, &data); err != nil {
			return nil, &Error{Op: "contributors " + r.info.FullName, Err: err}
		}
		for _, cr := range data {
			if cr.Type == source.AccountBot {
				continue
			}
			result = append(result, source.Account{
				Login:   cr.Login,
				Type:    cr.Type,
				HTMLURL: cr.HTMLURL,
			})
		}
	}
	return result, nil
}

func escapePath(p string) string {
	parts := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
