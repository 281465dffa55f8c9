package gitlab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/iga/httpclient"
	"github.com/lehigh-university-libraries/iga/source"
)

// DefaultBaseURL is the API of gitlab.com.
const DefaultBaseURL = "https://gitlab.com/api/v4"

var releaseURLPattern = regexp.MustCompile(`^https?://([^/\s]+)/([^\s]+?)/-/releases/([^/\s]+)/?$`)

// Error is a failed GitLab API operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gitlab %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Ref names a tagged release of a project.
type Ref struct {
	Host    string
	Project string
	Tag     string
}

func (r Ref) String() string {
	return r.Project + "@" + r.Tag
}

// ParseReleaseURL splits a release page address such as
// https://gitlab.com/group/subgroup/project/-/releases/v1.2.0.
func ParseReleaseURL(u string) (Ref, error) {
	m := releaseURLPattern.FindStringSubmatch(strings.TrimSpace(u))
	if m == nil {
		return Ref{}, fmt.Errorf("not a GitLab release URL: %q", u)
	}
	tag, err := url.PathUnescape(m[3])
	if err != nil {
		return Ref{}, fmt.Errorf("bad tag in %q: %w", u, err)
	}
	return Ref{Host: m[1], Project: m[2], Tag: tag}, nil
}

// APIURL returns the v4 API root of a GitLab host.
func APIURL(host string) string {
	if host == "" || host == "gitlab.com" {
		return DefaultBaseURL
	}
	return "https://" + host + "/api/v4"
}

// Client accesses the GitLab REST API.
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

// WithBaseURL points the client at a self-managed server or a test server.
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

// NewClient creates a GitLab API client. Pass an empty token for
// unauthenticated requests.
func NewClient(token string, opts ...Option) *Client {
	cfg := &clientConfig{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}

	headers := []httpclient.Option{
		httpclient.WithHeader("Accept", "application/json"),
		httpclient.WithHeader("User-Agent", "iga"),
	}
	if token != "" {
		headers = append(headers, httpclient.WithHeader("PRIVATE-TOKEN", token))
	}

	return &Client{
		http:    httpclient.New(append(headers, cfg.opts...)...),
		baseURL: cfg.baseURL,
	}
}

func (c *Client) projectURL(project string) string {
	return c.baseURL + "/projects/" + url.PathEscape(project)
}

// Open fetches the project and the release named by ref.
func (c *Client) Open(ctx context.Context, ref Ref) (*Repo, *source.Release, error) {
	repo, err := c.Project(ctx, ref.Project)
	if err != nil {
		return nil, nil, err
	}
	release, err := c.Release(ctx, ref.Project, ref.Tag)
	if err != nil {
		return nil, nil, err
	}
	repo.ref = release.Tag
	return repo, release, nil
}

// Release fetches a release by tag. The tag "latest" selects the most
// recent release.
func (c *Client) Release(ctx context.Context, project, tag string) (*source.Release, error) {
	endpoint := c.projectURL(project) + "/releases/" + url.PathEscape(tag)
	if tag == "latest" {
		endpoint = c.projectURL(project) + "/releases/permalink/latest"
	}

	var data releaseResponse
	if err := c.http.Get(ctx, endpoint, &data); err != nil {
		return nil, &Error{Op: "release " + project + "@" + tag, Err: err}
	}
	slog.Debug("fetched release", "project", project, "tag", data.TagName)
	return data.release(), nil
}

// Project fetches a project record, including its detected license.
func (c *Client) Project(ctx context.Context, project string) (*Repo, error) {
	var data projectResponse
	if err := c.http.Get(ctx, c.projectURL(project)+"?license=true", &data); err != nil {
		return nil, &Error{Op: "project " + project, Err: err}
	}
	return &Repo{
		client: c,
		info:   data.info(),
		id:     data.PathWithNamespace,
		ref:    data.DefaultBranch,
	}, nil
}

// Account fetches a user, or failing that a group, by its path. Results
// are cached for the life of the client.
func (c *Client) Account(ctx context.Context, login string) (*source.Account, error) {
	login = strings.TrimPrefix(strings.TrimSpace(login), "@")
	if login == "" {
		return nil, &Error{Op: "account", Err: httpclient.ErrNotFound}
	}

	var account source.Account
	err := c.http.Cached(ctx, "gitlab:"+c.baseURL+":account:"+strings.ToLower(login), &account, func() error {
		found, err := c.user(ctx, login)
		if errors.Is(err, httpclient.ErrNotFound) {
			found, err = c.group(ctx, login)
		}
		if err != nil {
			return err
		}
		account = *found
		return nil
	})
	if err != nil {
		return nil, &Error{Op: "account " + login, Err: err}
	}
	return &account, nil
}

// user looks a username up and then reads the public profile, which is
// the only record that carries the organization.
func (c *Client) user(ctx context.Context, username string) (*source.Account, error) {
	var matches []userResponse
	if err := c.http.Get(ctx, c.baseURL+"/users?username="+url.QueryEscape(username), &matches); err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, httpclient.ErrNotFound
	}

	profile := matches[0]
	if err := c.http.Get(ctx, c.baseURL+"/users/"+strconv.Itoa(profile.ID), &profile); err != nil && !errors.Is(err, httpclient.ErrNotFound) {
		return nil, err
	}
	acct := profile.account()
	return &acct, nil
}

func (c *Client) group(ctx context.Context, path string) (*source.Account, error) {
	var data groupResponse
	if err := c.http.Get(ctx, c.baseURL+"/groups/"+url.PathEscape(path)+"?with_projects=false", &data); err != nil {
		return nil, err
	}
	return &source.Account{
		Login:   data.FullPath,
		Type:    source.AccountOrganization,
		Name:    data.Name,
		HTMLURL: data.WebURL,
	}, nil
}

// IsNotFound reports whether err means the requested object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, httpclient.ErrNotFound)
}
