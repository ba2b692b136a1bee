// Package query builds the warehouse queries of the extraction
// pipeline as typed descriptors: parameterized SQL text plus the
// column consumers should order results by. The builders are pure;
// execution belongs to the io packages.
//
// Prefix matching over metadata paths uses LIKE with an explicit
// escape character ('|') that differs from the path separator ('\'),
// so the backslashes that i2b2 paths are full of are never read as
// pattern escapes.
package query

// Sep is the path separator of hierarchical metadata keys.
const Sep = `\`

// LikeEscape overrides the LIKE escape character. Both PostgreSQL
// and i2b2 paths make use of '\', so the default escape cannot be
// used.
const LikeEscape = "|"

// Query is a parameterized query descriptor. OrderBy, when set,
// names the column consumers should append an ORDER BY over.
type Query struct {
	SQL     string
	OrderBy string
}
