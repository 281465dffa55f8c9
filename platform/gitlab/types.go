package gitlab

import (
	"strings"
	"time"

	"github.com/lehigh-university-libraries/iga/source"
)

type namespaceResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	FullPath string `json:"full_path"`
	Kind     string `json:"kind"`
	WebURL   string `json:"web_url"`
}

type projectResponse struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Path              string            `json:"path"`
	PathWithNamespace string            `json:"path_with_namespace"`
	Description       string            `json:"description"`
	WebURL            string            `json:"web_url"`
	DefaultBranch     string            `json:"default_branch"`
	Namespace         namespaceResponse `json:"namespace"`
	License           *struct {
		Key       string `json:"key"`
		Name      string `json:"name"`
		Nickname  string `json:"nickname"`
		HTMLURL   string `json:"html_url"`
		SourceURL string `json:"source_url"`
	} `json:"license"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	Topics         []string  `json:"topics"`
	TagList        []string  `json:"tag_list"`
	IssuesEnabled  bool      `json:"issues_enabled"`
}

func (p projectResponse) info() source.RepoInfo {
	owner := source.Account{
		Login:   p.Namespace.FullPath,
		Type:    source.AccountOrganization,
		Name:    p.Namespace.Name,
		HTMLURL: p.Namespace.WebURL,
	}
	if p.Namespace.Kind == "user" {
		owner.Login = p.Namespace.Path
		owner.Type = source.AccountUser
	}

	topics := p.Topics
	if len(topics) == 0 {
		topics = p.TagList
	}
	info := source.RepoInfo{
		FullName:    p.PathWithNamespace,
		Name:        p.Path,
		Description: strings.TrimSpace(p.Description),
		HTMLURL:     p.WebURL,
		Owner:       owner,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.LastActivityAt,
		Topics:      topics,
		HasIssues:   p.IssuesEnabled,
	}
	if p.License != nil && p.License.Name != "" {
		info.License = &source.License{
			Name:   p.License.Name,
			SPDXID: p.License.Key,
			URL:    p.License.SourceURL,
		}
	}
	return info
}

type userResponse struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	WebURL       string `json:"web_url"`
	Organization string `json:"organization"`
	Bot          bool   `json:"bot"`
}

func (u userResponse) account() source.Account {
	acct := source.Account{
		Login:   u.Username,
		Type:    source.AccountUser,
		Name:    strings.TrimSpace(u.Name),
		Company: strings.TrimSpace(u.Organization),
		HTMLURL: u.WebURL,
	}
	if u.Bot {
		acct.Type = source.AccountBot
	}
	return acct
}

type groupResponse struct {
	Name     string `json:"name"`
	FullPath string `json:"full_path"`
	WebURL   string `json:"web_url"`
}

type releaseResponse struct {
	TagName     string       `json:"tag_name"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	ReleasedAt  time.Time    `json:"released_at"`
	Author      userResponse `json:"author"`
	Upcoming    bool         `json:"upcoming_release"`
	Assets      struct {
		Sources []struct {
			Format string `json:"format"`
			URL    string `json:"url"`
		} `json:"sources"`
		Links []struct {
			Name           string `json:"name"`
			URL            string `json:"url"`
			DirectAssetURL string `json:"direct_asset_url"`
			LinkType       string `json:"link_type"`
		} `json:"links"`
	} `json:"assets"`
	Links struct {
		Self string `json:"self"`
	} `json:"_links"`
}

func (r releaseResponse) release() *source.Release {
	rel := &source.Release{
		Tag:         r.TagName,
		Name:        r.Name,
		Body:        r.Description,
		HTMLURL:     r.Links.Self,
		Author:      r.Author.account(),
		CreatedAt:   r.CreatedAt,
		PublishedAt: r.ReleasedAt,
		Prerelease:  r.Upcoming,
	}
	for _, s := range r.Assets.Sources {
		switch s.Format {
		case "zip":
			rel.ZipballURL = s.URL
		case "tar.gz":
			rel.TarballURL = s.URL
		}
	}
	for _, l := range r.Assets.Links {
		u := l.DirectAssetURL
		if u == "" {
			u = l.URL
		}
		rel.Assets = append(rel.Assets, source.Asset{Name: l.Name, URL: u})
	}
	return rel
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

type contributorResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Commits int    `json:"commits"`
}
