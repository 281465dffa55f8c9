package cmd

import (
	"context"
	"fmt"

	"github.com/lehigh-university-libraries/iga/config"
	"github.com/lehigh-university-libraries/iga/crosswalk"
	"github.com/lehigh-university-libraries/iga/entity"
	"github.com/lehigh-university-libraries/iga/format"
	_ "github.com/lehigh-university-libraries/iga/format/invenio"
	"github.com/lehigh-university-libraries/iga/httpclient"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/lookup"
	"github.com/lehigh-university-libraries/iga/platform/github"
	"github.com/lehigh-university-libraries/iga/platform/gitlab"
	"github.com/lehigh-university-libraries/iga/reference"
	"github.com/lehigh-university-libraries/iga/source"
)

// services are the network clients of one run. They share a memo cache
// so a name resolved for one field is not fetched again for another.
type services struct {
	github   *github.Client
	gitlab   func(host string) *gitlab.Client
	useLab   bool
	registry *lookup.Registry
	refs     *reference.Formatter
	splitter *entity.Splitter
}

func newServices(c *config.Config) *services {
	memo := httpclient.NewMemo()
	httpOpts := []httpclient.Option{
		httpclient.WithHeader("User-Agent", c.UserAgent),
		httpclient.WithCache(memo),
	}
	client := httpclient.New(httpOpts...)
	splitter := entity.NewSplitter()

	registry := lookup.NewRegistry(
		lookup.WithClient(client),
		lookup.WithEndpoints(lookup.Endpoints{
			ORCID:  c.ORCIDURL,
			ROR:    c.RORURL,
			IDConv: c.IDConvURL,
		}),
		lookup.WithSplitter(splitter.Split),
	)
	return &services{
		github: github.NewClient(c.GitHubToken,
			github.WithBaseURL(c.GitHubAPIURL),
			github.WithHTTPOptions(httpOpts...),
		),
		gitlab: func(host string) *gitlab.Client {
			base := c.GitLabAPIURL
			if base == "" {
				base = gitlab.APIURL(host)
			}
			return gitlab.NewClient(c.GitLabToken,
				gitlab.WithBaseURL(base),
				gitlab.WithHTTPOptions(httpOpts...),
			)
		},
		useLab: c.GitLab,
		registry: registry,
		refs: reference.NewFormatter(
			reference.WithLookup(registry),
			reference.WithClient(client),
			reference.WithResolver(c.DOIURL),
		),
		splitter: splitter,
	}
}

func (s *services) crosswalk(c *config.Config, accounts source.AccountFetcher) (*crosswalk.Crosswalk, error) {
	return crosswalk.New(crosswalk.Options{
		IncludeAll:     c.IncludeAll,
		ProviderPolicy: c.ProviderPolicy,
		Publisher:      c.Publisher,
		Resolver: entity.NewResolver(
			entity.WithLookup(s.registry),
			entity.WithSplitter(s.splitter),
			entity.WithAccounts(accounts),
		),
		References: s.refs,
	})
}

// sourceFlags select where the source metadata comes from.
type sourceFlags struct {
	codemeta string
	cff      string
	dir      string
	tag      string
}

type stringFlagSet interface {
	StringVar(p *string, name, value, usage string)
}

func (f *sourceFlags) register(cmdFlags stringFlagSet) {
	cmdFlags.StringVar(&f.codemeta, "codemeta", "", "Local codemeta.json to use instead of a release")
	cmdFlags.StringVar(&f.cff, "cff", "", "Local CITATION.cff to use instead of a release")
	cmdFlags.StringVar(&f.dir, "dir", "", "Local checkout to read metadata files from instead of a release")
	cmdFlags.StringVar(&f.tag, "tag", "", "Release tag to record with --dir")
}

// bundle loads the sources named by a release URL argument or by the
// local file flags.
func (f *sourceFlags) bundle(ctx context.Context, s *services, args []string) (*source.Bundle, source.AccountFetcher, error) {
	local := f.codemeta != "" || f.cff != "" || f.dir != ""
	switch {
	case len(args) == 1 && local:
		return nil, nil, badUsage("give either a release URL or local files, not both")
	case len(args) == 1:
		return s.release(ctx, args[0])
	case f.dir != "":
		if f.codemeta != "" || f.cff != "" {
			return nil, nil, badUsage("--dir cannot be combined with --codemeta or --cff")
		}
		repo := &source.LocalRepo{Dir: f.dir}
		bundle, err := crosswalk.LoadBundle(ctx, repo, &source.Release{Tag: f.tag}, nil)
		if err != nil {
			return nil, nil, err
		}
		if !bundle.HasMetadata() {
			return nil, nil, fmt.Errorf("%s: %w", f.dir, crosswalk.ErrNoSources)
		}
		return bundle, nil, nil
	case local:
		bundle, err := crosswalk.LoadFiles(f.codemeta, f.cff)
		if err != nil {
			return nil, nil, err
		}
		if f.tag != "" {
			bundle.Release = &source.Release{Tag: f.tag}
		}
		return bundle, nil, nil
	default:
		return nil, nil, badUsage("a release URL or --codemeta, --cff or --dir is required")
	}
}

// release loads the bundle for a release page. GitLab addresses end in
// /-/releases/<tag>; with GitLab mode on every address is read as one.
func (s *services) release(ctx context.Context, u string) (*source.Bundle, source.AccountFetcher, error) {
	ghRef, ghErr := github.ParseReleaseURL(u)
	if s.useLab || ghErr != nil {
		ref, err := gitlab.ParseReleaseURL(u)
		if err != nil {
			if s.useLab {
				return nil, nil, usageError{err}
			}
			return nil, nil, usageError{ghErr}
		}
		client := s.gitlab(ref.Host)
		repo, release, err := client.Open(ctx, ref)
		if err != nil {
			return nil, nil, err
		}
		bundle, err := crosswalk.LoadBundle(ctx, repo, release, client)
		if err != nil {
			return nil, nil, err
		}
		return bundle, client, nil
	}

	repo, release, err := s.github.Open(ctx, ghRef)
	if err != nil {
		return nil, nil, err
	}
	bundle, err := crosswalk.LoadBundle(ctx, repo, release, s.github)
	if err != nil {
		return nil, nil, err
	}
	return bundle, s.github, nil
}

// recordResult is a built record with the sources it came from.
type recordResult struct {
	bundle *source.Bundle
	record *hub.Record
}

// buildRecord loads the sources and runs the crosswalk.
func buildRecord(ctx context.Context, f *sourceFlags, args []string) (*recordResult, error) {
	s := newServices(cfg)
	bundle, accounts, err := f.bundle(ctx, s, args)
	if err != nil {
		return nil, err
	}
	cw, err := s.crosswalk(cfg, accounts)
	if err != nil {
		return nil, err
	}
	rec, err := cw.Build(ctx, bundle)
	if err != nil {
		return nil, err
	}
	return &recordResult{bundle: bundle, record: rec}, nil
}

func invenioSerializer() (format.Serializer, error) {
	return format.GetSerializer("invenio")
}
