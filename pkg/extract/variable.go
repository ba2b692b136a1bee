package extract

import (
	"regexp"
)

// Variable is the destination-only record tying a requested concept
// to its resolved path. One row per requested concept ends up in the
// dataset's variable table.
type Variable struct {
	// ID is the zero-based position of the concept in the request.
	ID int

	// ItemKey is the original metadata key, table-access prefix
	// included.
	ItemKey string

	// ConceptPath is the resolved path used as a prefix-match
	// predicate.
	ConceptPath string

	// NameChar is the raw display name as delivered by the metadata
	// (often suffixed with bracketed fact counts).
	NameChar string

	// Name is the display label with the bracketed counts stripped.
	Name string
}

// Row renders the variable as a dataset insert row, in
// variable-table column order.
func (v Variable) Row() []any {
	return []any{v.ID, v.ItemKey, v.ConceptPath, v.NameChar, v.Name}
}

// i2b2 metadata decorates names with counts: "broken toe [200 facts]".
var countsRe = regexp.MustCompile(` \[\d+.*\]`)

// StripCounts removes a trailing bracketed fact count from a display
// label. Labels without the suffix are returned unchanged.
func StripCounts(txt string) string {
	return countsRe.ReplaceAllString(txt, "")
}
