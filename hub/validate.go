package hub

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string // Field path (e.g., "creators[0].person_or_org")
	Code    string // Error code (e.g., "required", "invalid_format")
	Message string // Human-readable message
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains all validation errors for a record.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError // Non-fatal issues (e.g., unmapped source terms)
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Error returns a combined error message, or nil if valid.
func (r *ValidationResult) Error() error {
	if r.IsValid() {
		return nil
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// ValidationOptions configures validation behavior.
type ValidationOptions struct {
	// RequireFields lists the fields that must be present.
	RequireFields []string
	// ValidateIdentifiers checks that identifiers are normalized and recognized
	ValidateIdentifiers bool
	// ValidateDates checks date value validity
	ValidateDates bool
	// StrictExtras warns about unmapped source terms that commonly carry data
	StrictExtras bool
}

// RequiredFields are the fields an InvenioRDM record cannot be deposited without.
var RequiredFields = []string{"creators", "publication_date", "resource_type", "title"}

// DefaultValidationOptions returns standard validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		RequireFields:       RequiredFields,
		ValidateIdentifiers: true,
		ValidateDates:       true,
		StrictExtras:        true,
	}
}

// Validate validates a record according to the given options.
func Validate(record *Record, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{}

	for _, field := range opts.RequireFields {
		if !hasField(record, field) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Code:    "required",
				Message: field + " is required",
			})
		}
	}

	if opts.ValidateIdentifiers {
		for i, id := range record.Identifiers {
			result.Errors = append(result.Errors, validateIdentifier(id, fmt.Sprintf("identifiers[%d]", i))...)
		}
		for i, rel := range record.RelatedIdentifiers {
			field := fmt.Sprintf("related_identifiers[%d]", i)
			result.Errors = append(result.Errors, validateIdentifier(Identifier{Identifier: rel.Identifier, Scheme: rel.Scheme}, field)...)
			if rel.RelationType.ID == "" {
				result.Errors = append(result.Errors, ValidationError{
					Field:   field + ".relation_type",
					Code:    "required",
					Message: "relation type is required",
				})
			}
		}
	}

	for i, c := range record.Creators {
		result.Errors = append(result.Errors, validateAssignment(c, fmt.Sprintf("creators[%d]", i), opts)...)
	}
	for i, c := range record.Contributors {
		errs := validateAssignment(c, fmt.Sprintf("contributors[%d]", i), opts)
		if c.Role == nil || c.Role.ID == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("contributors[%d].role", i),
				Code:    "required",
				Message: "contributor role is required",
			})
		}
		result.Errors = append(result.Errors, errs...)
	}

	if opts.ValidateDates {
		if record.PublicationDate != "" {
			result.Errors = append(result.Errors, validateDate(record.PublicationDate, "publication_date")...)
		}
		for i, d := range record.Dates {
			field := fmt.Sprintf("dates[%d]", i)
			result.Errors = append(result.Errors, validateDate(d.Date, field+".date")...)
			if d.Type.ID == "" {
				result.Errors = append(result.Errors, ValidationError{
					Field:   field + ".type",
					Code:    "required",
					Message: "date type is required",
				})
			}
		}
	}

	if opts.StrictExtras && record.Extra != nil {
		result.Warnings = append(result.Warnings, checkExtrasForPromotion(record.Extra)...)
	}

	return result
}

func hasField(r *Record, field string) bool {
	switch field {
	case "creators":
		return len(r.Creators) > 0
	case "publication_date":
		return strings.TrimSpace(r.PublicationDate) != ""
	case "resource_type":
		return r.ResourceType != nil && r.ResourceType.ID != ""
	case "title":
		return strings.TrimSpace(r.Title) != ""
	case "description":
		return strings.TrimSpace(r.Description) != ""
	case "publisher":
		return strings.TrimSpace(r.Publisher) != ""
	case "version":
		return strings.TrimSpace(r.Version) != ""
	case "rights":
		return len(r.Rights) > 0
	case "identifiers":
		return len(r.Identifiers) > 0
	}
	return false
}

func validateIdentifier(id Identifier, field string) []ValidationError {
	var errs []ValidationError

	value := strings.TrimSpace(id.Identifier)
	if value == "" {
		return append(errs, ValidationError{
			Field:   field + ".identifier",
			Code:    "required",
			Message: "identifier value is required",
		})
	}
	if !IsRecognized(id.Scheme) {
		return append(errs, ValidationError{
			Field:   field + ".scheme",
			Code:    "invalid_scheme",
			Message: fmt.Sprintf("unrecognized identifier scheme %q", id.Scheme),
		})
	}
	if normalized := NormalizeIdentifier(value, id.Scheme); normalized != value {
		errs = append(errs, ValidationError{
			Field:   field + ".identifier",
			Code:    "invalid_format",
			Message: fmt.Sprintf("%s %q is not in normalized form", id.Scheme, id.Identifier),
		})
	}
	return errs
}

func validateAssignment(a RoleAssignment, field string, opts ValidationOptions) []ValidationError {
	var errs []ValidationError
	p := a.PersonOrOrg

	switch p.Type {
	case Personal:
		if strings.TrimSpace(p.FamilyName) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".person_or_org.family_name",
				Code:    "required",
				Message: "a person must have a family name",
			})
		}
	case Organizational:
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".person_or_org.name",
				Code:    "required",
				Message: "an organization must have a name",
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   field + ".person_or_org.type",
			Code:    "invalid_type",
			Message: fmt.Sprintf("type must be %q or %q", Personal, Organizational),
		})
	}

	if opts.ValidateIdentifiers {
		for i, id := range p.Identifiers {
			errs = append(errs, validateIdentifier(id, fmt.Sprintf("%s.person_or_org.identifiers[%d]", field, i))...)
		}
	}
	for i, aff := range a.Affiliations {
		if aff.ID == "" && aff.Name == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.affiliations[%d]", field, i),
				Code:    "required",
				Message: "affiliation must have an id or a name",
			})
		}
	}
	return errs
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validateDate(value, field string) []ValidationError {
	if !isoDatePattern.MatchString(value) {
		return []ValidationError{{
			Field:   field,
			Code:    "invalid_format",
			Message: fmt.Sprintf("date %q is not YYYY-MM-DD", value),
		}}
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return []ValidationError{{
			Field:   field,
			Code:    "invalid_format",
			Message: fmt.Sprintf("date %q is not a calendar date", value),
		}}
	}
	currentYear := time.Now().Year()
	if t.Year() < 1000 || t.Year() > currentYear+10 {
		return []ValidationError{{
			Field:   field,
			Code:    "out_of_range",
			Message: fmt.Sprintf("year %d is outside reasonable range (1000-%d)", t.Year(), currentYear+10),
		}}
	}
	return nil
}

// Unmapped source terms that usually carry data worth mapping.
var promotionCandidates = map[string]string{
	"citation":             "citation metadata was not mapped",
	"funding":              "funding information was not mapped",
	"funder":               "funder information was not mapped",
	"contributor":          "contributors were not mapped",
	"contributors":         "contributors were not mapped",
	"keywords":             "keywords were not mapped",
	"license":              "license was not mapped",
	"identifier":           "identifiers were not mapped",
	"identifiers":          "identifiers were not mapped",
	"referencepublication": "referenced publications were not mapped",
	"references":           "referenced publications were not mapped",
	"relatedlink":          "related links were not mapped",
	"version":              "version was not mapped",
}

func checkExtrasForPromotion(extra *structpb.Struct) []ValidationError {
	var warnings []ValidationError

	if extra == nil || extra.Fields == nil {
		return warnings
	}

	for key := range extra.Fields {
		term := key
		if i := strings.LastIndex(term, "."); i >= 0 {
			term = term[i+1:]
		}
		normalizedKey := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(term))

		if suggestion, ok := promotionCandidates[normalizedKey]; ok {
			warnings = append(warnings, ValidationError{
				Field:   "extra." + key,
				Code:    "unmapped_term",
				Message: suggestion,
			})
		}
	}

	return warnings
}
