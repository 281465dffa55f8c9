package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/iga/httpclient"
	"github.com/lehigh-university-libraries/iga/source"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

var releaseURLPattern = regexp.MustCompile(`^https://github\.com/([^/\s]+)/([^/\s]+)/releases/tag/([^/\s]+)/?$`)

// Error is a failed GitHub API operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("github %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Ref names a tagged release.
type Ref struct {
	Owner string
	Repo  string
	Tag   string
}

func (r Ref) String() string {
	return r.Owner + "/" + r.Repo + "@" + r.Tag
}

// ParseReleaseURL splits a release page address such as
// https://github.com/owner/repo/releases/tag/v1.2.0.
func ParseReleaseURL(u string) (Ref, error) {
	m := releaseURLPattern.FindStringSubmatch(strings.TrimSpace(u))
	if m == nil {
		return Ref{}, fmt.Errorf("not a GitHub release URL: %q", u)
	}
	tag, err := url.PathUnescape(m[3])
	if err != nil {
		return Ref{}, fmt.Errorf("bad tag in %q: %w", u, err)
	}
	return Ref{Owner: m[1], Repo: m[2], Tag: tag}, nil
}

// Client accesses the GitHub REST API.
type Client struct {
	http    *httpclient.Client
	baseURL string
}

var _ source.AccountFetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	baseURL string
	opts    []httpclient.Option
}

// WithBaseURL points the client at another API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) {
		if u != "" {
			c.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithHTTPOptions passes options through to the underlying httpclient.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(c *clientConfig) {
		c.opts = append(c.opts, opts...)
	}
}

// NewClient creates a GitHub API client. Pass an empty token for
// unauthenticated requests.
func NewClient(token string, opts ...Option) *Client {
	cfg := &clientConfig{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}

	headers := []httpclient.Option{
		httpclient.WithHeader("Accept", "application/vnd.github.v3+json"),
		httpclient.WithHeader("X-GitHub-Api-Version", "2022-11-28"),
		httpclient.WithHeader("User-Agent", "iga"),
	}
	if token != "" {
		headers = append(headers, httpclient.WithHeader("Authorization", "Bearer "+token))
	}

	return &Client{
		http:    httpclient.New(append(headers, cfg.opts...)...),
		baseURL: cfg.baseURL,
	}
}

// Open fetches the repository and the release named by ref.
func (c *Client) Open(ctx context.Context, ref Ref) (*Repo, *source.Release, error) {
	repo, err := c.Repo(ctx, ref.Owner, ref.Repo)
	if err != nil {
		return nil, nil, err
	}
	release, err := c.Release(ctx, ref.Owner, ref.Repo, ref.Tag)
	if err != nil {
		return nil, nil, err
	}
	repo.ref = release.Tag
	return repo, release, nil
}

// Release fetches a release by tag. The tag "latest" selects the most
// recent published release.
func (c *Client) Release(ctx context.Context, owner, repo, tag string) (*source.Release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.baseURL, owner, repo, url.PathEscape(tag))
	if tag == "latest" {
		endpoint = fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo)
	}

	var release source.Release
	if err := c.http.Get(ctx, endpoint, &release); err != nil {
		return nil, &Error{Op: "release " + owner + "/" + repo + "@" + tag, Err: err}
	}
	slog.Debug("fetched release", "repo", owner+"/"+repo, "tag", release.Tag)
	return &release, nil
}

// Repo fetches a repository record.
func (c *Client) Repo(ctx context.Context, owner, repo string) (*Repo, error) {
	var data repoResponse
	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
	if err := c.http.Get(ctx, endpoint, &data); err != nil {
		return nil, &Error{Op: "repo " + owner + "/" + repo, Err: err}
	}
	return &Repo{
		client: c,
		info:   data.info(),
		ref:    data.DefaultBranch,
	}, nil
}

// Account fetches a user or organization account. Results are cached for
// the life of the client.
func (c *Client) Account(ctx context.Context, login string) (*source.Account, error) {
	login = strings.TrimPrefix(strings.TrimSpace(login), "@")
	if login == "" {
		return nil, &Error{Op: "account", Err: httpclient.ErrNotFound}
	}

	var account source.Account
	err := c.http.Cached(ctx, "github:user:"+strings.ToLower(login), &account, func() error {
		return c.http.Get(ctx, c.baseURL+"/users/"+url.PathEscape(login), &account)
	})
	if err != nil {
		return nil, &Error{Op: "account " + login, Err: err}
	}
	return &account, nil
}

// IsNotFound reports whether err means the requested object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, httpclient.ErrNotFound)
}
