// Package vocab provides the controlled vocabularies an InvenioRDM server
// accepts: identifier schemes, roles, relation types, resource types,
// description, date and title types, and licenses.
package vocab

// Vocabulary names.
const (
	IdentifierTypes  = "identifiertypes"
	CreatorRoles     = "creatorroles"
	ContributorRoles = "contributorroles"
	RelationTypes    = "relationtypes"
	ResourceTypes    = "resourcetypes"
	DescriptionTypes = "descriptiontypes"
	DateTypes        = "datetypes"
	TitleTypes       = "titletypes"
	Licenses         = "licenses"
)

// Vocabulary is one controlled list of terms.
type Vocabulary struct {
	// Name is the vocabulary identifier
	Name string `yaml:"name" json:"name"`

	// Description provides human-readable documentation
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Terms are the allowed values
	Terms []Term `yaml:"terms" json:"terms"`
}

// Term is one entry of a vocabulary.
type Term struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`

	// License-only fields
	URL         string   `yaml:"url,omitempty" json:"url,omitempty"`
	URLs        []string `yaml:"urls,omitempty" json:"urls,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Invenio     *bool    `yaml:"invenio,omitempty" json:"invenio,omitempty"`
}

// InInvenio reports whether the server's license vocabulary carries this
// term. Terms are assumed present unless marked otherwise.
func (t Term) InInvenio() bool {
	return t.Invenio == nil || *t.Invenio
}

// Provider answers vocabulary questions for the crosswalk.
type Provider interface {
	// Has reports whether id is a term of the named vocabulary.
	Has(vocabulary, id string) bool
	// Match finds the term whose id or title is within edit distance 1
	// of text.
	Match(vocabulary, text string) (Term, bool)
	// License finds a license by SPDX id (case-insensitive) or by URL.
	License(idOrURL string) (Term, bool)
}
