package crosswalk

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/iga/entity"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/lookup"
	"github.com/lehigh-university-libraries/iga/source"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeReferences map[string]string

func (f fakeReferences) Reference(_ context.Context, pubID string) (string, error) {
	return f[pubID], nil
}

type failingReferences struct{}

func (failingReferences) Reference(context.Context, string) (string, error) {
	return "", &hub.InternalError{Op: "format reference", Err: errors.New("not text")}
}

var testAccounts = source.StaticAccounts{
	"mhucka":         {Login: "mhucka", Type: source.AccountUser, Name: "Michael Hucka"},
	"tmorrell":       {Login: "tmorrell", Type: source.AccountUser, Name: "Tom Morrell"},
	"caltechlibrary": {Login: "caltechlibrary", Type: source.AccountOrganization, Name: "Caltech Library"},
}

func newTestCrosswalk(t *testing.T, opts Options) *Crosswalk {
	t.Helper()
	if opts.Resolver == nil {
		opts.Resolver = entity.NewResolver(
			entity.WithLookup(&lookup.Static{
				Orgs: map[string]string{"05dxps055": "California Institute of Technology"},
			}),
			entity.WithAccounts(testAccounts),
		)
	}
	if opts.References == nil {
		opts.References = fakeReferences{"10.1234/iga": "Hucka, M. (2023). IGA. Caltech Library."}
	}
	opts.Now = func() time.Time { return testNow }
	cw, err := New(opts)
	require.NoError(t, err)
	return cw
}

func testRepo() *source.StaticRepo {
	return &source.StaticRepo{
		Repo: source.RepoInfo{
			FullName:    "caltechlibrary/iga",
			Name:        "iga",
			Description: "Archive GitHub releases in InvenioRDM",
			HTMLURL:     "https://github.com/caltechlibrary/iga",
			Homepage:    "https://caltechlibrary.github.io/iga",
			Owner:       source.Account{Login: "caltechlibrary", Type: source.AccountOrganization},
			CreatedAt:   time.Date(2022, 12, 1, 20, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2023, 3, 11, 9, 30, 0, 0, time.UTC),
			Topics:      []string{"archiving", "invenio"},
			HasPages:    true,
			HasIssues:   true,
		},
		Langs:     []string{"Python", "Shell"},
		FileNames: []string{"README.md", "LICENSE.md"},
		Contributions: []source.Account{
			{Login: "mhucka", Type: source.AccountUser},
			{Login: "dependabot[bot]", Type: source.AccountBot},
			{Login: "release-bot", Type: source.AccountUser},
			{Login: "tmorrell", Type: source.AccountUser},
		},
	}
}

func testRelease() *source.Release {
	return &source.Release{
		Tag:         "v1.2.0",
		HTMLURL:     "https://github.com/caltechlibrary/iga/releases/tag/v1.2.0",
		Author:      source.Account{Login: "mhucka", Type: source.AccountUser},
		CreatedAt:   time.Date(2023, 3, 10, 17, 0, 0, 0, time.UTC),
		PublishedAt: time.Date(2023, 3, 10, 18, 0, 0, 0, time.UTC),
		ZipballURL:  "https://api.github.com/repos/caltechlibrary/iga/zipball/v1.2.0",
		TarballURL:  "https://api.github.com/repos/caltechlibrary/iga/tarball/v1.2.0",
	}
}

func testCodeMeta() map[string]any {
	return map[string]any{
		"@context":    "https://w3id.org/codemeta/3.0",
		"@type":       "SoftwareSourceCode",
		"name":        "IGA",
		"description": "InvenioRDM GitHub Archiver",
		"author": []any{
			map[string]any{
				"@type":      "Person",
				"@id":        "https://orcid.org/0000-0001-9105-5960",
				"givenName":  "Michael",
				"familyName": "Hucka",
			},
			map[string]any{"@type": "Person", "givenName": "Tom", "familyName": "Morrell"},
		},
		"maintainer":           map[string]any{"@type": "Person", "givenName": "Michael", "familyName": "Hucka"},
		"contributor":          []any{map[string]any{"@type": "Person", "givenName": "Ada", "familyName": "Lovelace"}},
		"keywords":             "archiving; InvenioRDM; software",
		"programmingLanguage":  map[string]any{"@type": "ComputerLanguage", "name": "Python"},
		"license":              "https://spdx.org/licenses/BSD-3-Clause",
		"datePublished":        "2023-03-01",
		"dateCreated":          "2022-11-30",
		"copyrightYear":        float64(2022),
		"codeRepository":       "https://github.com/caltechlibrary/iga",
		"issueTracker":         "https://github.com/caltechlibrary/iga/issues",
		"relatedLink":          []any{"https://caltechlibrary.github.io/iga/", "https://data.caltech.edu"},
		"softwareHelp":         "https://caltechlibrary.github.io/iga",
		"referencePublication": map[string]any{"@type": "ScholarlyArticle", "@id": "https://doi.org/10.1234/iga"},
		"funder":               map[string]any{"@type": "Organization", "name": "Caltech Library"},
		"identifier":           "https://doi.org/10.22002/abcde-12345",
		"applicationCategory":  "Archiving",
	}
}

func bundleWith(machine, citation map[string]any) *source.Bundle {
	b := &source.Bundle{
		Repo:     testRepo(),
		Release:  testRelease(),
		Accounts: testAccounts,
	}
	if machine != nil {
		b.Machine = source.NewDocument("codemeta", machine)
	}
	if citation != nil {
		b.Citation = source.NewDocument("cff", citation)
	}
	return b
}

func TestBuildFromCodeMeta(t *testing.T) {
	release := testRelease()
	release.Body = "Fixes and improvements."
	bundle := bundleWith(testCodeMeta(), nil)
	bundle.Release = release

	rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundle)
	require.NoError(t, err)

	assert.Equal(t, "IGA – v1.2.0", rec.Title)
	assert.Equal(t, "1.2.0", rec.Version)
	assert.Equal(t, "2023-03-01", rec.PublicationDate)
	assert.Equal(t, DefaultPublisher, rec.Publisher)
	assert.Equal(t, &hub.VocabID{ID: "software"}, rec.ResourceType)
	assert.Equal(t, []hub.VocabID{{ID: "eng"}}, rec.Languages)
	assert.Equal(t, "Fixes and improvements.", rec.Description)
	assert.Equal(t, []hub.Description{{Description: "InvenioRDM GitHub Archiver", Type: hub.VocabID{ID: "other"}}}, rec.AdditionalDescriptions)
	assert.Empty(t, rec.AdditionalTitles)

	require.Len(t, rec.Creators, 2)
	assert.Equal(t, "Hucka", rec.Creators[0].PersonOrOrg.FamilyName)
	assert.Equal(t, "0000-0001-9105-5960", rec.Creators[0].PersonOrOrg.ORCID())
	assert.Equal(t, "Morrell", rec.Creators[1].PersonOrOrg.FamilyName)

	// The maintainer is already a creator.
	require.Len(t, rec.Contributors, 1)
	assert.Equal(t, "Lovelace", rec.Contributors[0].PersonOrOrg.FamilyName)
	assert.Equal(t, "other", rec.Contributors[0].RoleID())

	assert.Equal(t, []hub.Date{
		hub.NewDate("2023-03-10", hub.DateAvailable),
		hub.NewDate("2022-11-30", hub.DateCreated),
		hub.NewDate("2022-01-01", hub.DateCopyrighted),
	}, rec.Dates)

	assert.Equal(t, []hub.Right{{ID: "bsd-3-clause"}}, rec.Rights)
	assert.Equal(t, []hub.Identifier{{Identifier: "10.22002/abcde-12345", Scheme: hub.SchemeDOI}}, rec.Identifiers)
	assert.Equal(t, []string{"application/zip", "application/x-tar-gz"}, rec.Formats)
	assert.Equal(t, []hub.Funding{{Funder: &hub.Funder{Name: "Caltech Library"}}}, rec.Funding)
	assert.Equal(t, []hub.Reference{{
		Reference:  "Hucka, M. (2023). IGA. Caltech Library.",
		Identifier: "10.1234/iga",
		Scheme:     "other",
	}}, rec.References)

	var subjects []string
	for _, s := range rec.Subjects {
		subjects = append(subjects, s.Subject)
	}
	assert.Equal(t, []string{"archiving", "GitHub", "IGA", "InvenioRDM", "Python", "software"}, subjects)

	assert.Equal(t, []hub.RelatedIdentifier{
		hub.NewRelatedIdentifier(hub.Identifier{Identifier: "https://github.com/caltechlibrary/iga/releases/tag/v1.2.0", Scheme: hub.SchemeURL}, "isidenticalto", "software"),
		hub.NewRelatedIdentifier(hub.Identifier{Identifier: "https://github.com/caltechlibrary/iga", Scheme: hub.SchemeURL}, "isderivedfrom", "software"),
		hub.NewRelatedIdentifier(hub.Identifier{Identifier: "https://caltechlibrary.github.io/iga", Scheme: hub.SchemeURL}, "isdocumentedby", "publication-softwaredocumentation"),
		hub.NewRelatedIdentifier(hub.Identifier{Identifier: "https://github.com/caltechlibrary/iga/issues", Scheme: hub.SchemeURL}, "issupplementedby", "other"),
		hub.NewRelatedIdentifier(hub.Identifier{Identifier: "https://data.caltech.edu", Scheme: hub.SchemeURL}, "references", "other"),
		hub.NewRelatedIdentifier(hub.Identifier{Identifier: "10.1234/iga", Scheme: hub.SchemeDOI}, "isreferencedby", ""),
	}, rec.RelatedIdentifiers)

	assert.Equal(t, map[string]any{"codemeta.applicationCategory": "Archiving"}, hub.GetExtraFields(rec))

	result := hub.Validate(rec, hub.DefaultValidationOptions())
	assert.True(t, result.IsValid(), "%v", result.Errors)
}

func TestBuildFromCitation(t *testing.T) {
	citation := map[string]any{
		"cff-version":   "1.2.0",
		"message":       "If you use this software, please cite it.",
		"title":         "Sea surface temperatures",
		"type":          "dataset",
		"authors":       []any{map[string]any{"family-names": "Doe", "given-names": "Jane"}},
		"date-released": time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC),
		"keywords":      []any{"oceans", "Oceans", "climate"},
		"license":       "MIT",
		"doi":           "10.5281/zenodo.1234567",
		"preferred-citation": map[string]any{
			"type":    "article",
			"title":   "Measuring the sea",
			"doi":     "10.1234/iga",
			"authors": []any{map[string]any{"family-names": "Doe"}},
		},
	}
	rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundleWith(nil, citation))
	require.NoError(t, err)

	assert.Equal(t, "Sea surface temperatures – v1.2.0", rec.Title)
	assert.Equal(t, &hub.VocabID{ID: "dataset"}, rec.ResourceType)
	assert.Equal(t, "2022-08-15", rec.PublicationDate)
	require.Len(t, rec.Creators, 1)
	assert.Equal(t, "Jane", rec.Creators[0].PersonOrOrg.GivenName)
	assert.Equal(t, "Doe", rec.Creators[0].PersonOrOrg.FamilyName)
	assert.Equal(t, []hub.Right{{ID: "mit"}}, rec.Rights)
	assert.Equal(t, []hub.Identifier{{Identifier: "10.5281/zenodo.1234567", Scheme: hub.SchemeDOI}}, rec.Identifiers)
	require.Len(t, rec.References, 1)
	assert.Equal(t, "10.1234/iga", rec.References[0].Identifier)

	var subjects []string
	for _, s := range rec.Subjects {
		subjects = append(subjects, s.Subject)
	}
	assert.Equal(t, []string{"climate", "GitHub", "IGA", "oceans"}, subjects)
	assert.Empty(t, hub.GetExtraFields(rec))
}

func TestAdditionalTitles(t *testing.T) {
	machine := map[string]any{
		"name":   "IGA",
		"author": map[string]any{"@type": "Person", "givenName": "Michael", "familyName": "Hucka"},
	}
	citation := map[string]any{"title": "InvenioRDM GitHub Archiver"}

	rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundleWith(machine, citation))
	require.NoError(t, err)
	assert.Equal(t, []hub.Title{{
		Title: "InvenioRDM GitHub Archiver",
		Type:  hub.VocabID{ID: "alternative-title"},
		Lang:  &hub.VocabID{ID: "eng"},
	}}, rec.AdditionalTitles)

	rec, err = newTestCrosswalk(t, Options{IncludeAll: true}).Build(t.Context(), bundleWith(machine, citation))
	require.NoError(t, err)
	require.Len(t, rec.AdditionalTitles, 2)
	assert.Equal(t, "InvenioRDM GitHub Archiver", rec.AdditionalTitles[0].Title)
	assert.Equal(t, "caltechlibrary/iga", rec.AdditionalTitles[1].Title)

	// A CFF title equal to the name adds nothing.
	rec, err = newTestCrosswalk(t, Options{}).Build(t.Context(), bundleWith(machine, map[string]any{"title": "iga"}))
	require.NoError(t, err)
	assert.Empty(t, rec.AdditionalTitles)
}

func TestBuildWithoutMetadataUsesPlatformData(t *testing.T) {
	rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundleWith(nil, nil))
	require.NoError(t, err)

	assert.Equal(t, "caltechlibrary/iga – v1.2.0", rec.Title)
	assert.Equal(t, "Archive GitHub releases in InvenioRDM", rec.Description)
	assert.Equal(t, "2023-03-10", rec.PublicationDate)

	require.Len(t, rec.Creators, 1)
	assert.Equal(t, "Michael", rec.Creators[0].PersonOrOrg.GivenName)
	assert.Equal(t, "Hucka", rec.Creators[0].PersonOrOrg.FamilyName)

	// Bots and the creator are left out.
	require.Len(t, rec.Contributors, 1)
	assert.Equal(t, "Morrell", rec.Contributors[0].PersonOrOrg.FamilyName)

	assert.Equal(t, []hub.Date{
		hub.NewDate("2022-12-01", hub.DateCreated),
		hub.NewDate("2023-03-11", hub.DateUpdated),
	}, rec.Dates)

	var subjects []string
	for _, s := range rec.Subjects {
		subjects = append(subjects, s.Subject)
	}
	assert.Equal(t, []string{"archiving", "GitHub", "IGA", "invenio", "Python", "Shell"}, subjects)

	var relations []string
	for _, rel := range rec.RelatedIdentifiers {
		relations = append(relations, rel.RelationType.ID+" "+rel.Identifier)
	}
	assert.Equal(t, []string{
		"isidenticalto https://github.com/caltechlibrary/iga/releases/tag/v1.2.0",
		"isderivedfrom https://github.com/caltechlibrary/iga",
		"isdescribedby https://caltechlibrary.github.io/iga",
		"issupplementedby https://github.com/caltechlibrary/iga/issues",
	}, relations)

	assert.Equal(t, []hub.Right{{
		Title: &hub.LangText{En: "License"},
		Link:  "https://github.com/caltechlibrary/iga/blob/v1.2.0/LICENSE.md",
	}}, rec.Rights)
}

func TestBuildMissingCreators(t *testing.T) {
	bundle := &source.Bundle{
		Repo:    &source.StaticRepo{Repo: source.RepoInfo{FullName: "someone/thing"}},
		Release: &source.Release{Tag: "1.0"},
	}
	_, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundle)
	require.Error(t, err)
	assert.ErrorIs(t, err, hub.ErrMissingData)

	var missing *hub.MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "creators", missing.Field)
}

func TestBuildPropagatesInternalErrors(t *testing.T) {
	cw := newTestCrosswalk(t, Options{References: failingReferences{}})
	_, err := cw.Build(t.Context(), bundleWith(testCodeMeta(), nil))
	assert.ErrorIs(t, err, hub.ErrInternal)
}

func TestBuildIsDeterministic(t *testing.T) {
	cw := newTestCrosswalk(t, Options{IncludeAll: true})
	first, err := cw.Build(t.Context(), bundleWith(testCodeMeta(), nil))
	require.NoError(t, err)
	second, err := cw.Build(t.Context(), bundleWith(testCodeMeta(), nil))
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
	assert.Equal(t, hub.GetExtraFields(first), hub.GetExtraFields(second))
}

func TestFunding(t *testing.T) {
	acme := map[string]any{"@type": "Organization", "name": "Acme Foundation"}
	caltech := map[string]any{"@type": "Organization", "@id": "https://ror.org/05dxps055"}

	tests := []struct {
		name    string
		machine map[string]any
		want    []hub.Funding
	}{
		{
			name:    "several funders with funding cannot be paired",
			machine: map[string]any{"funder": []any{acme, caltech}, "funding": "Grant 123"},
			want:    nil,
		},
		{
			name:    "several funders without funding",
			machine: map[string]any{"funder": []any{acme, caltech}},
			want: []hub.Funding{
				{Funder: &hub.Funder{Name: "Acme Foundation"}},
				{Funder: &hub.Funder{ID: "05dxps055", Name: "California Institute of Technology"}},
			},
		},
		{
			name:    "text funding reports the funder",
			machine: map[string]any{"funder": acme, "funding": "Grant 123"},
			want:    []hub.Funding{{Funder: &hub.Funder{Name: "Acme Foundation"}}},
		},
		{
			name:    "text funding without a funder",
			machine: map[string]any{"funding": "Grant 123"},
			want:    nil,
		},
		{
			name:    "not available",
			machine: map[string]any{"funder": acme, "funding": "N/A"},
			want:    nil,
		},
		{
			name: "award with a name and an identifier",
			machine: map[string]any{
				"funder": caltech,
				"funding": map[string]any{
					"@type":      "Grant",
					"name":       "Archiving research software",
					"identifier": "CL-2023-01",
				},
			},
			want: []hub.Funding{{
				Funder: &hub.Funder{ID: "05dxps055", Name: "California Institute of Technology"},
				Award:  &hub.Award{Title: &hub.LangText{En: "Archiving research software"}, Number: "CL-2023-01"},
			}},
		},
		{
			name: "funder given inside the funding item",
			machine: map[string]any{
				"funding": []any{map[string]any{"name": "Archiving", "funder": "Acme Foundation"}},
			},
			want: []hub.Funding{{Funder: &hub.Funder{Name: "Acme Foundation"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := tt.machine
			machine["author"] = "Jane Doe"
			rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundleWith(machine, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Funding)
		})
	}
}

func TestVersion(t *testing.T) {
	tests := map[string]string{
		"v1.2.0":       "1.2.0",
		"V2":           "2",
		"ver 3.1":      "3.1",
		"version.4.0b": "4.0b",
		"version-5":    "version-5",
		"1.0.0":        "1.0.0",
		"vacation":     "vacation",
		"  v0.9  ":     "0.9",
		"":             "",
	}
	for tag, want := range tests {
		assert.Equal(t, want, Version(tag), tag)
	}
}

func TestVersionFallsBackToDeclaredVersion(t *testing.T) {
	bundle := bundleWith(map[string]any{"author": "Jane Doe", "version": "v2.0.1"}, nil)
	bundle.Release.Tag = ""
	rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundle)
	require.NoError(t, err)
	assert.Equal(t, "2.0.1", rec.Version)
	assert.Equal(t, "caltechlibrary/iga", rec.Title)
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"a, b", " c"}, SplitKeywords("a, b; c"))
	assert.Equal(t, []string{"a", " b"}, SplitKeywords("a, b"))
	assert.Equal(t, []string{"alpha", "beta"}, SplitKeywords("alpha  beta"))
}

func TestRights(t *testing.T) {
	author := "Jane Doe"

	t.Run("unrecognized metadata license falls back to the platform", func(t *testing.T) {
		bundle := bundleWith(map[string]any{"author": author, "license": "Proprietary"}, nil)
		bundle.Repo.(*source.StaticRepo).Repo.License = &source.License{Name: "MIT License", SPDXID: "MIT"}
		rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundle)
		require.NoError(t, err)
		assert.Equal(t, []hub.Right{{ID: "mit"}}, rec.Rights)
	})

	t.Run("cff license-url", func(t *testing.T) {
		rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundleWith(
			map[string]any{"author": author},
			map[string]any{"license-url": "https://opensource.org/licenses/Apache-2.0"},
		))
		require.NoError(t, err)
		assert.Equal(t, []hub.Right{{ID: "apache-2.0"}}, rec.Rights)
	})

	t.Run("platform license Other is ignored", func(t *testing.T) {
		bundle := bundleWith(map[string]any{"author": author}, nil)
		repo := bundle.Repo.(*source.StaticRepo)
		repo.Repo.License = &source.License{Name: "Other", SPDXID: "NOASSERTION"}
		repo.FileNames = []string{"COPYING", "LICENSE.txt"}
		rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundle)
		require.NoError(t, err)
		require.Len(t, rec.Rights, 1)
		assert.Equal(t, "https://github.com/caltechlibrary/iga/blob/v1.2.0/LICENSE.txt", rec.Rights[0].Link)
	})

	t.Run("nothing found", func(t *testing.T) {
		bundle := bundleWith(map[string]any{"author": author}, nil)
		bundle.Repo.(*source.StaticRepo).FileNames = []string{"README.md"}
		rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundle)
		require.NoError(t, err)
		assert.Empty(t, rec.Rights)
	})
}

func TestProviderPolicy(t *testing.T) {
	machine := func() map[string]any {
		return map[string]any{
			"author":   "Jane Doe",
			"provider": map[string]any{"@type": "Organization", "name": "Caltech Library"},
		}
	}

	rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundleWith(machine(), nil))
	require.NoError(t, err)
	assert.Empty(t, rec.Contributors)

	rec, err = newTestCrosswalk(t, Options{ProviderPolicy: ProviderContributor}).Build(t.Context(), bundleWith(machine(), nil))
	require.NoError(t, err)
	require.Len(t, rec.Contributors, 1)
	assert.Equal(t, "Caltech Library", rec.Contributors[0].PersonOrOrg.Name)
	assert.Equal(t, "hostinginstitution", rec.Contributors[0].RoleID())

	p, err := ParseProviderPolicy(" Contributor ")
	require.NoError(t, err)
	assert.Equal(t, ProviderContributor, p)
	p, err = ParseProviderPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ProviderIgnore, p)
	_, err = ParseProviderPolicy("owner")
	assert.Error(t, err)
}

func TestDescriptions(t *testing.T) {
	machine := map[string]any{
		"author":       "Jane Doe",
		"releaseNotes": "https://github.com/caltechlibrary/iga/blob/main/CHANGES.md",
		"description":  "InvenioRDM GitHub Archiver",
		"readme":       "https://github.com/caltechlibrary/iga/blob/main/README.md",
	}
	rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundleWith(machine, map[string]any{"abstract": "invenioRDM github archiver"}))
	require.NoError(t, err)

	assert.Equal(t, "InvenioRDM GitHub Archiver", rec.Description)
	assert.Equal(t, []hub.Description{
		{
			Description: `Additional information is available at <a href="https://github.com/caltechlibrary/iga/blob/main/CHANGES.md">https://github.com/caltechlibrary/iga/blob/main/CHANGES.md</a>`,
			Type:        hub.VocabID{ID: "other"},
		},
		{
			Description: `Additional information is available at <a href="https://github.com/caltechlibrary/iga/blob/main/README.md">https://github.com/caltechlibrary/iga/blob/main/README.md</a>`,
			Type:        hub.VocabID{ID: "technical-info"},
		},
	}, rec.AdditionalDescriptions)

	rels := hub.GetRelatedByType(rec, hub.RelationIsDescribedBy)
	require.Len(t, rels, 1)
	assert.Equal(t, "https://github.com/caltechlibrary/iga/blob/main/CHANGES.md", rels[0].Identifier)
}

func TestDescriptionPlaceholder(t *testing.T) {
	bundle := bundleWith(map[string]any{"author": "Jane Doe"}, nil)
	bundle.Repo.(*source.StaticRepo).Repo.Description = ""
	rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundle)
	require.NoError(t, err)
	assert.Equal(t, NoDescription, rec.Description)
}

func TestPublicationDateFallsThroughBadDates(t *testing.T) {
	bundle := bundleWith(
		map[string]any{"author": "Jane Doe", "datePublished": "someday"},
		map[string]any{"date-released": "2021-07-04"},
	)
	rec, err := newTestCrosswalk(t, Options{}).Build(t.Context(), bundle)
	require.NoError(t, err)
	assert.Equal(t, "2021-07-04", rec.PublicationDate)

	bundle = bundleWith(map[string]any{"author": "Jane Doe"}, nil)
	bundle.Release = &source.Release{Tag: "v1"}
	rec, err = newTestCrosswalk(t, Options{}).Build(t.Context(), bundle)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", rec.PublicationDate)
	assert.Empty(t, hub.DatesOfType(rec, hub.DateAvailable))
}

func TestLoadBundle(t *testing.T) {
	repo := testRepo()
	repo.FileData = map[string][]byte{
		"codemeta.json": []byte(`{"name": "IGA", "author": "Jane Doe",}`),
		"CITATION.cff":  []byte("cff-version: 1.2.0\ntitle: IGA\n"),
	}
	bundle, err := LoadBundle(t.Context(), repo, testRelease(), testAccounts)
	require.NoError(t, err)
	require.True(t, bundle.Machine.Present())
	assert.Equal(t, "IGA", bundle.Machine.Text("name"))
	assert.Equal(t, "IGA", bundle.Citation.Text("title"))

	repo.FileData["CITATION.cff"] = []byte("- just\n- a list\n")
	bundle, err = LoadBundle(t.Context(), repo, testRelease(), testAccounts)
	require.NoError(t, err)
	assert.False(t, bundle.Citation.Present())
	assert.True(t, bundle.HasMetadata())
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	cm := filepath.Join(dir, "meta.json")
	require.NoError(t, os.WriteFile(cm, []byte(`{"name": "IGA"}`), 0o644))
	cf := filepath.Join(dir, "cite.yml")
	require.NoError(t, os.WriteFile(cf, []byte("cff-version: 1.2.0\ntitle: Other\n"), 0o644))

	bundle, err := LoadFiles(cm, cf)
	require.NoError(t, err)
	assert.Equal(t, "IGA", bundle.Machine.Text("name"))
	assert.Equal(t, "Other", bundle.Citation.Text("title"))

	_, err = LoadFiles("", "")
	assert.ErrorIs(t, err, ErrNoSources)

	_, err = LoadFiles(filepath.Join(dir, "missing.json"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
