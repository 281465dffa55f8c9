// Package gitlab reads release, project and account data from the GitLab
// REST API (v4) and presents it as the same source types the GitHub
// adapter produces, so the crosswalk runs unchanged against either host.
//
// # Projects
//
// GitLab projects live under nested groups, so a project is named by its
// full path ("group/subgroup/project") rather than an owner and a name.
// Release pages have the form https://host/<path>/-/releases/<tag>; the API
// root for a self-managed host is https://host/api/v4.
//
// # Errors
//
// Failures are returned as *Error, which wraps the httpclient sentinels in
// the same way as the github package.
//
// # Usage
//
//	ref, err := gitlab.ParseReleaseURL("https://gitlab.com/group/project/-/releases/v1.0.0")
//	client := gitlab.NewClient(os.Getenv("GITLAB_TOKEN"), gitlab.WithBaseURL(gitlab.APIURL(ref.Host)))
//	repo, release, err := client.Open(ctx, ref)
package gitlab
