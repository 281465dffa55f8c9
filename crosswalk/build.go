package crosswalk

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/iga/entity"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/source"
	"github.com/lehigh-university-libraries/iga/value"
	"github.com/lehigh-university-libraries/iga/vocab"
)

// build is the state of one Build call. Values several fields depend on
// are computed once and memoized.
type build struct {
	ctx        context.Context
	opts       Options
	vocab      vocab.Provider
	refs       Referencer
	resolver   *entity.Resolver
	bundle     *source.Bundle
	machine    *source.Document
	citation   *source.Document
	release    *source.Release
	info       source.RepoInfo
	rec        *hub.Record
	includeAll bool

	mainDescription *string
	authors         *[]hub.RoleAssignment
	authorsErr      error
	pubDate         *string
	files           *[]string
	referenceIDs    *[]hub.Identifier
}

// recordUnmapped copies source terms nothing read into the record extras.
func (b *build) recordUnmapped() {
	for _, doc := range []*source.Document{b.machine, b.citation} {
		unread := doc.Unread()
		keys := make([]string, 0, len(unread))
		for k := range unread {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			slog.Debug("unmapped source term", "source", doc.Name(), "key", k)
			hub.SetExtra(b.rec, doc.Name()+"."+k, jsonSafe(unread[k]))
		}
	}
}

// jsonSafe converts YAML-decoded values that structpb cannot hold.
func jsonSafe(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = jsonSafe(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = jsonSafe(item)
		}
		return out
	case time.Time:
		return val.Format(time.RFC3339)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	default:
		return val
	}
}

// scalar returns v as trimmed text, or "" when v is an object or a list.
func scalar(v any) string {
	switch v.(type) {
	case nil, map[string]any, []any:
		return ""
	}
	return strings.TrimSpace(value.Text(v))
}

// firstScalar returns the first non-empty scalar among the given values.
func firstScalar(values ...any) string {
	for _, v := range values {
		if s := scalar(v); s != "" {
			return s
		}
	}
	return ""
}

// isoDay formats a platform timestamp as YYYY-MM-DD in UTC.
func isoDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

var allowedURLSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"git":    true,
	"ftp":    true,
	"gopher": true,
	"s3":     true,
	"svn":    true,
}

// isURL reports whether s is an absolute URL with a host.
func isURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && u.Scheme != "" && u.Host != "" && !strings.ContainsAny(s, " \t\n")
}

// allowedURL reports whether s is a URL with a scheme records may link to.
func allowedURL(s string) bool {
	if !isURL(s) {
		return false
	}
	u, _ := url.Parse(strings.TrimSpace(s))
	return allowedURLSchemes[strings.ToLower(u.Scheme)]
}

// fileURLer is implemented by platform repositories that can link to a
// file at the release's ref.
type fileURLer interface {
	FileURL(path string) string
}

// fileURL returns the web address of a repository file at the release.
func (b *build) fileURL(name string) string {
	if f, ok := b.bundle.Repo.(fileURLer); ok {
		return f.FileURL(name)
	}
	if b.info.HTMLURL == "" {
		return ""
	}
	ref := b.release.Tag
	if ref == "" {
		ref = "HEAD"
	}
	return b.info.HTMLURL + "/blob/" + ref + "/" + name
}

// repoFiles lists the repository's files once.
func (b *build) repoFiles() []string {
	if b.files != nil {
		return *b.files
	}
	var files []string
	if b.bundle.Repo != nil {
		var err error
		files, err = b.bundle.Repo.Files(b.ctx)
		if err != nil {
			slog.Warn("unable to list repository files", "repo", b.info.FullName, "error", err)
			files = nil
		}
	}
	b.files = &files
	return files
}

// account fills in a partial platform account, such as a release author,
// from the account fetcher.
func (b *build) account(acct source.Account) source.Account {
	if b.bundle.Accounts == nil || acct.Login == "" {
		return acct
	}
	full, err := b.bundle.Accounts.Account(b.ctx, acct.Login)
	if err != nil || full == nil {
		slog.Debug("unable to fetch account", "login", acct.Login, "error", err)
		return acct
	}
	return *full
}

// entities resolves a list of CodeMeta or CFF person/organization values.
func (b *build) entities(doc *source.Document, items []any, role string) []hub.RoleAssignment {
	var out []hub.RoleAssignment
	for _, item := range items {
		var v any = item
		if m, ok := item.(map[string]any); ok {
			if doc == b.citation {
				v = entity.CitationEntity(m)
			} else {
				v = entity.CodeMetaEntity(m)
			}
		}
		ra, ok := b.resolver.Resolve(b.ctx, v, role)
		if !ok {
			slog.Debug("skipping unresolvable entity", "source", doc.Name(), "value", item)
			continue
		}
		out = append(out, ra)
	}
	return out
}

// checkedTerm returns id when the named vocabulary has it, otherwise
// fallback.
func (b *build) checkedTerm(vocabulary, id, fallback string) string {
	if b.vocab.Has(vocabulary, id) {
		return id
	}
	slog.Warn("term missing from vocabulary", "vocabulary", vocabulary, "id", id, "fallback", fallback)
	return fallback
}

// contains reports whether any element of list satisfies match.
func contains[T any](list []T, match func(T) bool) bool {
	for _, v := range list {
		if match(v) {
			return true
		}
	}
	return false
}
