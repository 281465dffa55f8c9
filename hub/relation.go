package hub

import (
	"strings"
)

// Relation types produced by the crosswalk.
const (
	RelationIsIdenticalTo    = "isidenticalto"
	RelationIsDerivedFrom    = "isderivedfrom"
	RelationIsDescribedBy    = "isdescribedby"
	RelationIsVersionOf      = "isversionof"
	RelationIsVariantFormOf  = "isvariantformof"
	RelationIsDocumentedBy   = "isdocumentedby"
	RelationIsSupplementedBy = "issupplementedby"
	RelationReferences       = "references"
	RelationIsReferencedBy   = "isreferencedby"
	RelationIsPartOf         = "ispartof"
	RelationHasPart          = "haspart"
)

// NormalizeRelationType folds DataCite-style spellings ("IsDerivedFrom",
// "is_derived_from", "is derived from") to the InvenioRDM token.
func NormalizeRelationType(value string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(value)))
}

// NewRelatedIdentifier builds a related identifier. Resource type is optional.
func NewRelatedIdentifier(id Identifier, relation, resourceType string) RelatedIdentifier {
	rel := RelatedIdentifier{
		Identifier:   id.Identifier,
		Scheme:       id.Scheme,
		RelationType: VocabID{ID: NormalizeRelationType(relation)},
	}
	if resourceType != "" {
		rel.ResourceType = &VocabID{ID: resourceType}
	}
	return rel
}
