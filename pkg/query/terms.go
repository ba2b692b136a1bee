package query

import (
	"fmt"

	"github.com/cdrkit/dfextract/pkg/star"
)

// ConceptTermQuery matches the concept dictionary against the staged
// paths: dictionary paths beginning with a staged path are selected.
// On an empty staging table the result set is empty.
func ConceptTermQuery() Query {
	sql := fmt.Sprintf(`SELECT DISTINCT cd.concept_path, cd.concept_cd, cd.name_char
FROM %s t
JOIN %s cd
  ON cd.concept_path LIKE (t.char_param1 || '%%') ESCAPE '%s'`,
		star.StagingConceptTable, star.TableConceptDimension, LikeEscape)

	return Query{SQL: sql, OrderBy: "concept_path"}
}

// ModifierTermQuery matches the modifier dictionary against the
// staged paths. The match direction is reversed from the concept
// case: the staged path is tested against the modifier's path, since
// modifiers key off a broader applicability path.
func ModifierTermQuery() Query {
	sql := fmt.Sprintf(`SELECT DISTINCT md.modifier_path, md.modifier_cd, md.name_char
FROM %s t
JOIN %s md
  ON t.char_param1 LIKE md.modifier_path`,
		star.StagingConceptTable, star.TableModifierDimension)

	return Query{SQL: sql, OrderBy: "modifier_path"}
}

// Ordered returns the query's SQL with its designated ordering
// applied.
func (q Query) Ordered() string {
	if q.OrderBy == "" {
		return q.SQL
	}
	return q.SQL + "\nORDER BY " + q.OrderBy
}
