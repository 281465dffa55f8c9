// Package hub defines the InvenioRDM metadata record produced by the
// crosswalk, plus helpers for identifiers, entities and validation.
package hub

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// VocabID references a term in a controlled vocabulary.
type VocabID struct {
	ID string `json:"id"`
}

// LangText is a localized string. Only English is produced.
type LangText struct {
	En string `json:"en"`
}

// Title is an additional title.
type Title struct {
	Title string   `json:"title"`
	Type  VocabID  `json:"type"`
	Lang  *VocabID `json:"lang,omitempty"`
}

// Description is an additional description.
type Description struct {
	Description string  `json:"description"`
	Type        VocabID `json:"type"`
}

// Date is a typed date in YYYY-MM-DD form.
type Date struct {
	Date string  `json:"date"`
	Type VocabID `json:"type"`
}

// Funder identifies a funding organization.
type Funder struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Award identifies a grant.
type Award struct {
	ID     string    `json:"id,omitempty"`
	Title  *LangText `json:"title,omitempty"`
	Number string    `json:"number,omitempty"`
}

// Funding pairs a funder with an optional award.
type Funding struct {
	Funder *Funder `json:"funder,omitempty"`
	Award  *Award  `json:"award,omitempty"`
}

// RelatedIdentifier links the record to another resource.
type RelatedIdentifier struct {
	Identifier   string   `json:"identifier"`
	Scheme       Scheme   `json:"scheme"`
	RelationType VocabID  `json:"relation_type"`
	ResourceType *VocabID `json:"resource_type,omitempty"`
}

// Reference is a formatted citation of a related publication.
type Reference struct {
	Reference  string `json:"reference"`
	Identifier string `json:"identifier,omitempty"`
	Scheme     string `json:"scheme,omitempty"`
}

// Right is a license or rights statement.
type Right struct {
	ID          string    `json:"id,omitempty"`
	Title       *LangText `json:"title,omitempty"`
	Description *LangText `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
}

// Subject is a free-text keyword.
type Subject struct {
	Subject string `json:"subject"`
}

// Record is the metadata section of an InvenioRDM record.
// Absent fields are omitted from JSON, never null.
type Record struct {
	AdditionalDescriptions []Description       `json:"additional_descriptions,omitempty"`
	AdditionalTitles       []Title             `json:"additional_titles,omitempty"`
	Contributors           []RoleAssignment    `json:"contributors,omitempty"`
	Creators               []RoleAssignment    `json:"creators,omitempty"`
	Dates                  []Date              `json:"dates,omitempty"`
	Description            string              `json:"description,omitempty"`
	Formats                []string            `json:"formats,omitempty"`
	Funding                []Funding           `json:"funding,omitempty"`
	Identifiers            []Identifier        `json:"identifiers,omitempty"`
	Languages              []VocabID           `json:"languages,omitempty"`
	PublicationDate        string              `json:"publication_date,omitempty"`
	Publisher              string              `json:"publisher,omitempty"`
	References             []Reference         `json:"references,omitempty"`
	RelatedIdentifiers     []RelatedIdentifier `json:"related_identifiers,omitempty"`
	ResourceType           *VocabID            `json:"resource_type,omitempty"`
	Rights                 []Right             `json:"rights,omitempty"`
	Subjects               []Subject           `json:"subjects,omitempty"`
	Title                  string              `json:"title,omitempty"`
	Version                string              `json:"version,omitempty"`

	// Extra holds source terms the crosswalk did not map.
	Extra *structpb.Struct `json:"-"`
}

// NewRecord creates a new empty Record.
func NewRecord() *Record {
	return &Record{}
}

// GetIdentifier returns the first identifier of a given scheme.
func GetIdentifier(r *Record, scheme Scheme) *Identifier {
	for i := range r.Identifiers {
		if r.Identifiers[i].Scheme == scheme {
			return &r.Identifiers[i]
		}
	}
	return nil
}

// GetDOI returns the DOI if present.
func GetDOI(r *Record) *Identifier {
	return GetIdentifier(r, SchemeDOI)
}

// GetRelatedByType returns related identifiers with the given relation.
func GetRelatedByType(r *Record, relation string) []RelatedIdentifier {
	var result []RelatedIdentifier
	for _, rel := range r.RelatedIdentifiers {
		if rel.RelationType.ID == relation {
			result = append(result, rel)
		}
	}
	return result
}

// SetExtra sets an extra field value on the record.
func SetExtra(r *Record, key string, value any) {
	if r.Extra == nil {
		r.Extra = &structpb.Struct{
			Fields: make(map[string]*structpb.Value),
		}
	}
	v, err := structpb.NewValue(value)
	if err == nil {
		r.Extra.Fields[key] = v
	}
}

// GetExtra retrieves an extra field value.
func GetExtra(r *Record, key string) (any, bool) {
	if r.Extra == nil || r.Extra.Fields == nil {
		return nil, false
	}
	v, ok := r.Extra.Fields[key]
	if !ok {
		return nil, false
	}
	return v.AsInterface(), true
}

// GetExtraFields returns all extra fields as a map.
func GetExtraFields(r *Record) map[string]any {
	if r.Extra == nil || r.Extra.Fields == nil {
		return nil
	}
	result := make(map[string]any, len(r.Extra.Fields))
	for k, v := range r.Extra.Fields {
		result[k] = v.AsInterface()
	}
	return result
}
