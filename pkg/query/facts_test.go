package query_test

import (
	"strings"
	"testing"

	"github.com/cdrkit/dfextract/pkg/query"
	"github.com/stretchr/testify/assert"
)

func TestCodeInsertQuery(t *testing.T) {
	q := query.CodeInsertQuery()

	t.Run("stages distinct codes", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(q.SQL,
			"INSERT INTO query_global_temp (concept_cd)"))
		assert.Contains(t, q.SQL, "SELECT DISTINCT tq.concept_cd")
	})

	t.Run("embeds the concept term query", func(t *testing.T) {
		assert.Contains(t, q.SQL, query.ConceptTermQuery().SQL)
	})
}

func TestFactQuery(t *testing.T) {
	q := query.FactQuery()

	t.Run("equality join against the staged code list", func(t *testing.T) {
		assert.Contains(t, q.SQL, "JOIN query_global_temp q")
		assert.Contains(t, q.SQL, "f.concept_cd = q.concept_cd")
		// No correlated LIKE over the fact table.
		assert.NotContains(t, q.SQL, "LIKE")
	})

	t.Run("filters by patient-set membership", func(t *testing.T) {
		assert.Contains(t, q.SQL, "JOIN qt_patient_set_collection pset")
		assert.Contains(t, q.SQL, "pset.patient_num = f.patient_num")
		assert.Contains(t, q.SQL, "pset.result_instance_id = $1")
	})

	t.Run("projects the full fact row", func(t *testing.T) {
		for _, col := range []string{
			"f.encounter_num", "f.patient_num", "f.concept_cd",
			"f.start_date", "f.nval_num", "f.tval_char",
		} {
			assert.Contains(t, q.SQL, col)
		}
	})
}

func TestFactCountQuery(t *testing.T) {
	q := query.FactCountQuery()
	assert.Contains(t, q.SQL, "SELECT count(*)")
	assert.Contains(t, q.SQL, "pset.result_instance_id = $1")
}
