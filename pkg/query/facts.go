package query

import (
	"fmt"
	"strings"

	"github.com/cdrkit/dfextract/pkg/star"
)

// CodeInsertQuery populates the code staging table with the distinct
// concept codes reachable from the staged paths. Staging the codes
// first turns the prefix-match join into a single equality join
// against a small code list, instead of a correlated LIKE over the
// much larger fact table.
func CodeInsertQuery() Query {
	sql := fmt.Sprintf(`INSERT INTO %s (concept_cd)
SELECT DISTINCT tq.concept_cd
FROM (%s) tq`,
		star.StagingCodeTable, ConceptTermQuery().SQL)

	return Query{SQL: sql}
}

// FactQuery selects the observation facts whose code is staged and
// whose patient belongs to the patient set bound as $1.
func FactQuery() Query {
	cols := make([]string, len(star.ObservationFactCols))
	for i, c := range star.ObservationFactCols {
		cols[i] = "f." + c
	}

	sql := fmt.Sprintf(`SELECT %s
FROM %s f
JOIN %s q
  ON f.concept_cd = q.concept_cd
JOIN %s pset
  ON pset.patient_num = f.patient_num
WHERE pset.result_instance_id = $1`,
		strings.Join(cols, ", "),
		star.TableObservationFact, star.StagingCodeTable,
		star.PatientSetCollection)

	return Query{SQL: sql}
}

// FactCountQuery counts the rows FactQuery would return for the
// patient set bound as $1; the count drives transfer progress
// reporting.
func FactCountQuery() Query {
	sql := fmt.Sprintf(`SELECT count(*)
FROM %s f
JOIN %s q
  ON f.concept_cd = q.concept_cd
JOIN %s pset
  ON pset.patient_num = f.patient_num
WHERE pset.result_instance_id = $1`,
		star.TableObservationFact, star.StagingCodeTable,
		star.PatientSetCollection)

	return Query{SQL: sql}
}
