package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/jdkato/prose/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/lookup"
	"github.com/lehigh-university-libraries/iga/source"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Michael  Hucka", "Michael Hucka"},
		{"<b>Jane</b> Doe", "Jane Doe"},
		{"Somedude [somedomain.io]", "Somedude"},
		{"Zhang Wei (张伟)", "Zhang Wei"},
		{"Zhang Wei 张伟", "Zhang Wei"},
		{"张伟", "张伟"},
		{"J.R.R. Tolkien", "J. R. R. Tolkien"},
		{"Ada Lovelace 🚀", "Ada Lovelace"},
		{"Bob* Smith!", "Bob Smith"},
		{"O’Brien", "O'Brien"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestScriptOf(t *testing.T) {
	assert.Equal(t, ScriptLatin, ScriptOf("Michael Hucka"))
	assert.Equal(t, ScriptJapanese, ScriptOf("やまだ たろう"))
	assert.Equal(t, ScriptKorean, ScriptOf("김민수"))
	assert.Equal(t, ScriptChinese, ScriptOf("王小明"))
	assert.Equal(t, ScriptOther, ScriptOf("Иван Петров"))
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name, given, family string
	}{
		{"Madonna", "", "Madonna"},
		{"michael hucka", "Michael", "Hucka"},
		{"Jane Q. Public", "Jane Q.", "Public"},
		{"J.R.R. Tolkien", "J. R. R.", "Tolkien"},
		{"Dr. Jane Smith", "Jane", "Smith"},
		{"Martin Luther King, Jr.", "Martin Luther", "King"},
		{"Hucka, Michael", "Michael", "Hucka"},
		{"Jean-Luc van der Berg", "Jean-Luc", "van der Berg"},
		{"Zhang Wei (张伟)", "Zhang", "Wei"},
		{"McDonald", "", "McDonald"},
		{"SMITH", "", "SMITH"},
		{"smith", "", "Smith"},
		{"R2D2", "", "R2D2"},
		{"", "", ""},
	}
	s := NewSplitter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			given, family := s.Split(tt.name)
			assert.Equal(t, tt.given, given)
			assert.Equal(t, tt.family, family)
		})
	}
}

func TestSplitKeepsGivenPrefix(t *testing.T) {
	given, family := NewSplitter().Split("Jane Q. Public")
	assert.True(t, len(given) >= 4 && given[:4] == "Jane")
	assert.Equal(t, "Public", family)
}

func TestSplitIsMemoized(t *testing.T) {
	s := NewSplitter()
	s.Split("Ada Lovelace")
	assert.Contains(t, s.memo, "Ada Lovelace")
	given, family := s.Split("Ada Lovelace")
	assert.Equal(t, "Ada", given)
	assert.Equal(t, "Lovelace", family)
}

func TestTagger(t *testing.T) {
	var tg Tagger

	got := tg.Tag("Acme Widgets Inc.")
	assert.Equal(t, CategoryCorporation, got.Category)
	assert.True(t, got.HasCorporate())
	assert.Equal(t, "Acme Widgets", got.Get(CorporationName))

	got = tg.Tag("Capt. James Cook")
	assert.Equal(t, CategoryPerson, got.Category)
	assert.Equal(t, "Capt", got.Get(PrefixOther))
	assert.Equal(t, "Cook", got.Get(Surname))

	got = tg.Tag("Jane Q. Public")
	assert.Equal(t, "Jane", got.Get(GivenName))
	assert.Equal(t, "Q.", got.Get(MiddleInitial))
	assert.Equal(t, "Public", got.Get(Surname))

	assert.Equal(t, CategoryHousehold, tg.Tag("John and Mary Smith").Category)
}

func TestClassifier(t *testing.T) {
	c := NewClassifier()
	tests := []struct {
		name string
		want Decision
	}{
		{"California Institute of Technology", NotPerson},
		{"Python Software Foundation", NotPerson},
		{"microsoft", NotPerson},
		{"Joe's Foobar", NotPerson},
		{"Tom & Jerry", NotPerson},
		{"Foo - The Project", NotPerson},
		{"12345", NotPerson},
		{"2021-03", NotPerson},
		{"Caltech Library", NotPerson},
		{"numpy developers", NotPerson},
		{"", NotPerson},
		{"Michael Hucka", Person},
		{"Jane Q. Public", Person},
		{"J. Smith", Person},
		{"Madonna", Person},
		{"清华大学", NotPerson},
		{"王小明", Person},
		{"김민수", Person},
		{"株式会社トヨタ", NotPerson},
		{"The Astropy Collaboration", NotPerson},
		{"Open Robotics", NotPerson},
		{"Deep Mind", NotPerson},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.name))
		})
	}
}

func TestClassifierWithRecognizer(t *testing.T) {
	alwaysPerson := RecognizerFunc(func(string) Label { return LabelPerson })
	c := NewClassifier(WithRecognizer(ScriptLatin, alwaysPerson))
	assert.True(t, c.IsPerson("zork quux"))
	// Known organizations win before any recognizer runs.
	assert.False(t, c.IsPerson("Mozilla"))

	silent := RecognizerFunc(func(string) Label { return LabelNone })
	c = NewClassifier(WithRecognizer(ScriptLatin, silent), WithKnownOrganizations("Zork Quux"))
	assert.False(t, c.IsPerson("zork"))
	assert.False(t, c.IsPerson("Zork Quux"))
	assert.True(t, c.IsPerson("Zork Blorb"))
}

func TestModelRecognizer(t *testing.T) {
	calls := 0
	m := NewModelRecognizerWith(func(text string) ([]prose.Entity, error) {
		calls++
		switch text {
		case "Grace Hopper":
			return []prose.Entity{{Text: "Grace Hopper", Label: "PERSON"}}, nil
		case "Zork Quux":
			return nil, nil
		case "New York":
			return []prose.Entity{{Text: "New York", Label: "GPE"}}, nil
		default:
			return nil, errors.New("model unavailable")
		}
	})

	assert.Equal(t, LabelPerson, m.Recognize("Grace  Hopper"))
	assert.Equal(t, LabelNone, m.Recognize("Zork Quux"))
	assert.Equal(t, LabelOrg, m.Recognize("New York"))
	assert.Equal(t, LabelNone, m.Recognize("Broken Input"))
	assert.Equal(t, 4, calls)

	assert.Equal(t, LabelPerson, m.Recognize("Grace Hopper"))
	assert.Equal(t, 4, calls, "labels are cached")

	assert.Equal(t, LabelNone, m.Recognize("Hopper"))
	assert.Equal(t, LabelNone, m.Recognize("one two three four five six"))
	assert.Equal(t, 4, calls, "names outside the word limits are not sent")
}

func TestChainTakesFirstOpinion(t *testing.T) {
	org := RecognizerFunc(func(string) Label { return LabelOrg })
	none := RecognizerFunc(func(string) Label { return LabelNone })
	person := RecognizerFunc(func(string) Label { return LabelPerson })

	assert.Equal(t, LabelOrg, Chain{none, org, person}.Recognize("x"))
	assert.Equal(t, LabelPerson, Chain{none, person}.Recognize("x"))
	assert.Equal(t, LabelNone, Chain{none}.Recognize("x"))
}

func TestClassifierModelDecidesUnknownNames(t *testing.T) {
	model := NewModelRecognizerWith(func(text string) ([]prose.Entity, error) {
		if text == "Xochitl Quetzal" {
			return []prose.Entity{{Text: text, Label: "PERSON"}}, nil
		}
		return []prose.Entity{{Text: text, Label: "GPE"}}, nil
	})
	c := NewClassifier(WithRecognizer(ScriptLatin, Chain{RecognizerFunc(gazetteerRecognizer), model}))

	assert.True(t, c.IsPerson("Xochitl Quetzal"))
	assert.False(t, c.IsPerson("Costa Rica"))
	// Gazetteer evidence is taken before the model is asked.
	assert.True(t, c.IsPerson("Michael Hucka"))
	assert.False(t, c.IsPerson("The Astropy Collaboration"))
}

func TestResolveCollaborationIsOrganization(t *testing.T) {
	r := newTestResolver()
	for _, name := range []string{"The Astropy Collaboration", "Open Robotics", "Deep Mind"} {
		ra, ok := r.Resolve(context.Background(), name, "")
		require.True(t, ok, name)
		assert.Equal(t, hub.Organizational, ra.PersonOrOrg.Type, name)
		assert.Equal(t, name, ra.PersonOrOrg.Name)
		assert.Empty(t, ra.PersonOrOrg.GivenName, name)
	}
}

func newTestResolver(opts ...Option) *Resolver {
	static := &lookup.Static{
		People: map[string]lookup.Name{
			"0000-0001-9105-5960": {Given: "Michael", Family: "Hucka"},
			"0000-0002-1825-0097": {Given: "Josiah", Family: "Carberry"},
		},
		Orgs: map[string]string{"05dxps055": "California Institute of Technology"},
	}
	return NewResolver(append([]Option{WithLookup(static)}, opts...)...)
}

func TestResolveCodeMetaPerson(t *testing.T) {
	r := newTestResolver()
	ra, ok := r.Resolve(context.Background(), CodeMetaEntity{
		"@type":      "Person",
		"familyName": "Hucka",
		"givenName":  "Michael",
	}, "")
	require.True(t, ok)
	assert.Equal(t, hub.Personal, ra.PersonOrOrg.Type)
	assert.Equal(t, "Michael", ra.PersonOrOrg.GivenName)
	assert.Equal(t, "Hucka", ra.PersonOrOrg.FamilyName)
	assert.Nil(t, ra.Role)
}

func TestResolveCodeMetaPersonFromORCID(t *testing.T) {
	r := newTestResolver()
	ra, ok := r.Resolve(context.Background(), map[string]any{
		"@type": "Person",
		"@id":   "https://orcid.org/0000-0001-9105-5960",
		"affiliation": map[string]any{
			"@type": "Organization",
			"@id":   "https://ror.org/05dxps055",
		},
	}, "editor")
	require.True(t, ok)
	assert.Equal(t, "Michael", ra.PersonOrOrg.GivenName)
	assert.Equal(t, "Hucka", ra.PersonOrOrg.FamilyName)
	assert.Equal(t, "0000-0001-9105-5960", ra.PersonOrOrg.ORCID())
	assert.Equal(t, []hub.Affiliation{{ID: "05dxps055", Name: "California Institute of Technology"}}, ra.Affiliations)
	assert.Equal(t, "editor", ra.RoleID())
}

func TestResolveCodeMetaPersonSplitsName(t *testing.T) {
	r := newTestResolver()
	ra, ok := r.Resolve(context.Background(), CodeMetaEntity{
		"@type":       "Person",
		"name":        []any{"Ada", "Lovelace"},
		"affiliation": []any{"Analytical Engine Society", map[string]any{"legalName": "Royal Society", "name": "RS"}},
	}, "")
	require.True(t, ok)
	assert.Equal(t, "Ada", ra.PersonOrOrg.GivenName)
	assert.Equal(t, "Lovelace", ra.PersonOrOrg.FamilyName)
	assert.Equal(t, []hub.Affiliation{{Name: "Analytical Engine Society"}, {Name: "Royal Society"}}, ra.Affiliations)
}

func TestResolveCitationPerson(t *testing.T) {
	r := newTestResolver()
	ra, ok := r.Resolve(context.Background(), CitationEntity{
		"family-names":  "Berg",
		"name-particle": "van den",
		"given-names":   "Anna",
		"orcid":         "https://orcid.org/0000-0002-1825-0097",
	}, "")
	require.True(t, ok)
	assert.Equal(t, "Anna", ra.PersonOrOrg.GivenName)
	assert.Equal(t, "van den Berg", ra.PersonOrOrg.FamilyName)
	assert.Equal(t, "0000-0002-1825-0097", ra.PersonOrOrg.ORCID())
}

func TestResolveCitationEntity(t *testing.T) {
	r := newTestResolver()
	ra, ok := r.Resolve(context.Background(), CitationEntity{"name": "The Research Software Project"}, "")
	require.True(t, ok)
	assert.Equal(t, hub.Organizational, ra.PersonOrOrg.Type)
	assert.Equal(t, "The Research Software Project", ra.PersonOrOrg.Name)
}

func TestResolveOrganizationFromROR(t *testing.T) {
	r := newTestResolver()
	ra, ok := r.Resolve(context.Background(), CodeMetaEntity{"@type": "Organization", "@id": "https://ror.org/05dxps055"}, "")
	require.True(t, ok)
	assert.Equal(t, "California Institute of Technology", ra.PersonOrOrg.Name)
	assert.Equal(t, "05dxps055", ra.PersonOrOrg.IdentifierOf(hub.SchemeROR))
}

func TestResolvePersonWithoutNameFails(t *testing.T) {
	r := newTestResolver()
	_, ok := r.Resolve(context.Background(), CodeMetaEntity{"@type": "Person", "email": "x@example.org"}, "")
	assert.False(t, ok)
}

func TestResolveString(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()

	ra, ok := r.Resolve(ctx, "https://orcid.org/0000-0001-9105-5960", "")
	require.True(t, ok)
	assert.Equal(t, "Hucka", ra.PersonOrOrg.FamilyName)
	assert.Equal(t, "0000-0001-9105-5960", ra.PersonOrOrg.ORCID())

	ra, ok = r.Resolve(ctx, "05dxps055", "")
	require.True(t, ok)
	assert.Equal(t, "California Institute of Technology", ra.PersonOrOrg.Name)

	ra, ok = r.Resolve(ctx, "Python Software Foundation", "")
	require.True(t, ok)
	assert.Equal(t, hub.Organizational, ra.PersonOrOrg.Type)

	ra, ok = r.Resolve(ctx, "Jane Q. Public", "")
	require.True(t, ok)
	assert.Equal(t, hub.Personal, ra.PersonOrOrg.Type)
	assert.Equal(t, "Public", ra.PersonOrOrg.FamilyName)

	_, ok = r.Resolve(ctx, "   ", "")
	assert.False(t, ok)
}

func TestResolveKnownOrganizationIsNeverPerson(t *testing.T) {
	r := newTestResolver()
	for _, name := range []string{"California Institute of Technology", "Mozilla", "NASA", "Software Heritage"} {
		ra, ok := r.Resolve(context.Background(), name, "")
		require.True(t, ok, name)
		assert.Equal(t, hub.Organizational, ra.PersonOrOrg.Type, name)
		assert.Equal(t, name, ra.PersonOrOrg.Name)
	}
}

func TestResolveAccounts(t *testing.T) {
	accounts := source.StaticAccounts{
		"mhucka":         {Login: "mhucka", Type: source.AccountUser, Name: "Michael Hucka", Company: "@caltechlibrary"},
		"caltechlibrary": {Login: "caltechlibrary", Type: source.AccountOrganization, Name: "Caltech Library"},
		"anon":           {Login: "anon", Type: source.AccountUser, Company: "Acme Corp"},
	}
	r := newTestResolver(WithAccounts(accounts))
	ctx := context.Background()

	ra, ok := r.Resolve(ctx, "https://github.com/mhucka", "")
	require.True(t, ok)
	assert.Equal(t, "Michael", ra.PersonOrOrg.GivenName)
	assert.Equal(t, "Hucka", ra.PersonOrOrg.FamilyName)
	assert.Equal(t, []hub.Affiliation{{Name: "Caltech Library"}}, ra.Affiliations)

	ra, ok = r.Resolve(ctx, "anon", "")
	require.True(t, ok)
	assert.Equal(t, "anon", ra.PersonOrOrg.FamilyName)
	assert.Empty(t, ra.PersonOrOrg.GivenName)
	assert.Equal(t, []hub.Affiliation{{Name: "Acme Corp"}}, ra.Affiliations)

	ra, ok = r.Resolve(ctx, source.Account{Login: "caltechlibrary", Type: source.AccountOrganization}, "")
	require.True(t, ok)
	assert.Equal(t, "caltechlibrary", ra.PersonOrOrg.Name)

	// Not an account: falls through to classification.
	ra, ok = r.Resolve(ctx, "Madonna", "")
	require.True(t, ok)
	assert.Equal(t, "Madonna", ra.PersonOrOrg.FamilyName)
}

func TestResolveAll(t *testing.T) {
	r := newTestResolver()
	got := r.ResolveAll(context.Background(), []any{
		map[string]any{"@type": "Person", "givenName": "Ada", "familyName": "Lovelace"},
		42,
		"NASA",
	}, "other")
	require.Len(t, got, 2)
	assert.Equal(t, "Lovelace", got[0].PersonOrOrg.FamilyName)
	assert.Equal(t, "NASA", got[1].PersonOrOrg.Name)
	for _, ra := range got {
		assert.Equal(t, "other", ra.RoleID())
	}
}
