// Package github reads release, repository and account data from the GitHub
// REST API and presents it as the source types the crosswalk consumes.
//
// # Authentication
//
// A personal access token raises the API rate limit from 60 to 5000
// requests an hour. Pass an empty token for anonymous access.
//
// # Errors
//
// Failures are returned as *Error, which records the operation and wraps the
// httpclient sentinel (ErrNotFound, ErrUnauthorized, ErrNetwork). GitHub
// reports an exhausted rate limit as 403, so it surfaces as ErrUnauthorized.
//
// # Usage
//
//	client := github.NewClient(os.Getenv("GITHUB_TOKEN"))
//	ref, err := github.ParseReleaseURL("https://github.com/owner/repo/releases/tag/v1.0.0")
//	repo, release, err := client.Open(ctx, ref)
package github
