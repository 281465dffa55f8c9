package github

import (
	"strings"
	"time"

	"github.com/lehigh-university-libraries/iga/source"
)

type repoResponse struct {
	FullName      string         `json:"full_name"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	HTMLURL       string         `json:"html_url"`
	Homepage      string         `json:"homepage"`
	DefaultBranch string         `json:"default_branch"`
	Owner         source.Account `json:"owner"`
	License       *struct {
		Key    string `json:"key"`
		Name   string `json:"name"`
		SPDXID string `json:"spdx_id"`
		URL    string `json:"url"`
	} `json:"license"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Topics    []string  `json:"topics"`
	HasPages  bool      `json:"has_pages"`
	HasIssues bool      `json:"has_issues"`
}

func (r repoResponse) info() source.RepoInfo {
	info := source.RepoInfo{
		FullName:    r.FullName,
		Name:        r.Name,
		Description: strings.TrimSpace(r.Description),
		HTMLURL:     r.HTMLURL,
		Homepage:    strings.TrimSpace(r.Homepage),
		Owner:       r.Owner,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Topics:      r.Topics,
		HasPages:    r.HasPages,
		HasIssues:   r.HasIssues,
	}
	if r.License != nil && r.License.Name != "" {
		info.License = &source.License{
			Name:   r.License.Name,
			SPDXID: r.License.SPDXID,
			URL:    r.License.URL,
		}
	}
	return info
}

type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

type contributorResponse struct {
	Login         string `json:"login"`
	Type          string `json:"type"`
	HTMLURL       string `json:"html_url"`
	Contributions int    `json:"contributions"`
}
