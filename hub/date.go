package hub

// Date types used in Record.Dates.
const (
	DateAvailable   = "available"
	DateCreated     = "created"
	DateUpdated     = "updated"
	DateCopyrighted = "copyrighted"
)

// NewDate builds a typed date. The value must already be YYYY-MM-DD.
func NewDate(iso, dateType string) Date {
	return Date{Date: iso, Type: VocabID{ID: dateType}}
}

// DatesOfType returns the date strings of a given type.
func DatesOfType(r *Record, dateType string) []string {
	var result []string
	for _, d := range r.Dates {
		if d.Type.ID == dateType {
			result = append(result, d.Date)
		}
	}
	return result
}
