package query_test

// The warehouse queries use numbered parameters and plain
// LIKE/aggregation SQL, so they run unchanged on SQLite. These tests
// execute them against a small star-schema fixture instead of only
// inspecting the generated text.

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cdrkit/dfextract/pkg/query"
	"github.com/cdrkit/dfextract/pkg/star"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openCDW(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cdw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ddl := [][2]any{
		{star.StagingConceptTable, []string{"char_param1", "char_param2"}},
		{star.StagingCodeTable, []string{"concept_cd"}},
		{star.PatientSetCollection,
			[]string{"result_instance_id", "patient_num"}},
		{star.TableConceptDimension, star.ConceptTermCols},
		{star.TableModifierDimension, star.ModifierTermCols},
		{star.TableObservationFact, star.ObservationFactCols},
		{star.TablePatientDimension, star.PatientDimensionCols},
		{star.TableVisitDimension, star.VisitDimensionCols},
	}
	for _, d := range ddl {
		stmt := fmt.Sprintf("CREATE TABLE %s (%s)",
			d[0], strings.Join(d[1].([]string), ", "))
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func insertRow(
	t *testing.T, db *sql.DB, table, cols string, vals ...any,
) {
	t.Helper()
	ph := strings.TrimSuffix(strings.Repeat("?, ", len(vals)), ", ")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, cols, ph)
	_, err := db.Exec(stmt, vals...)
	require.NoError(t, err)
}

func fetchAll(t *testing.T, db *sql.DB, q string, args ...any) [][]any {
	t.Helper()
	rows, err := db.Query(q, args...)
	require.NoError(t, err)
	defer rows.Close()

	cols, err := rows.Columns()
	require.NoError(t, err)

	var out [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		require.NoError(t, rows.Scan(ptrs...))
		out = append(out, vals)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestConceptTermMatchExec(t *testing.T) {
	db := openCDW(t)
	insertRow(t, db, star.TableConceptDimension,
		"concept_path, concept_cd, name_char",
		`\Diagnoses\Diabetes\`, "ICD9:250.00", "Diabetes")
	insertRow(t, db, star.TableConceptDimension,
		"concept_path, concept_cd, name_char",
		`\Diagnoses\Diabetes\Type2\`, "ICD9:250.02", "Type 2")
	insertRow(t, db, star.TableConceptDimension,
		"concept_path, concept_cd, name_char",
		`\Labs\A1c\`, "LOINC:4548-4", "Hemoglobin A1c")

	insertRow(t, db, star.StagingConceptTable,
		"char_param1, char_param2", `\Diagnoses\`, "Diagnoses")

	got := fetchAll(t, db, query.ConceptTermQuery().Ordered())
	require.Len(t, got, 2)
	assert.Equal(t, `\Diagnoses\Diabetes\`, got[0][0])
	assert.Equal(t, `\Diagnoses\Diabetes\Type2\`, got[1][0])
}

func TestConceptTermEmptyStagingExec(t *testing.T) {
	db := openCDW(t)
	insertRow(t, db, star.TableConceptDimension,
		"concept_path, concept_cd, name_char",
		`\Diagnoses\Diabetes\`, "ICD9:250.00", "Diabetes")

	got := fetchAll(t, db, query.ConceptTermQuery().Ordered())
	assert.Empty(t, got)
}

func TestModifierTermDirectionExec(t *testing.T) {
	db := openCDW(t)
	// the staged path is the LIKE subject here; the modifier path is
	// the pattern
	insertRow(t, db, star.TableModifierDimension,
		"modifier_path, modifier_cd, name_char",
		`\Diagnoses\%`, "MOD:PDX", "Primary diagnosis")
	insertRow(t, db, star.TableModifierDimension,
		"modifier_path, modifier_cd, name_char",
		`\Labs\%`, "MOD:ABN", "Abnormal flag")

	insertRow(t, db, star.StagingConceptTable,
		"char_param1, char_param2", `\Diagnoses\Diabetes\`, "Diabetes")

	got := fetchAll(t, db, query.ModifierTermQuery().Ordered())
	require.Len(t, got, 1)
	assert.Equal(t, "MOD:PDX", got[0][1])
}

func TestFactExtractionExec(t *testing.T) {
	db := openCDW(t)
	insertRow(t, db, star.TableConceptDimension,
		"concept_path, concept_cd, name_char",
		`\Diagnoses\Diabetes\`, "ICD9:250.00", "Diabetes")
	insertRow(t, db, star.TableConceptDimension,
		"concept_path, concept_cd, name_char",
		`\Labs\A1c\`, "LOINC:4548-4", "Hemoglobin A1c")
	insertRow(t, db, star.StagingConceptTable,
		"char_param1, char_param2", `\Diagnoses\`, "Diagnoses")

	_, err := db.Exec(query.CodeInsertQuery().SQL)
	require.NoError(t, err)

	codes := fetchAll(t, db,
		fmt.Sprintf("SELECT concept_cd FROM %s", star.StagingCodeTable))
	require.Len(t, codes, 1)
	assert.Equal(t, "ICD9:250.00", codes[0][0])

	insertRow(t, db, star.PatientSetCollection,
		"result_instance_id, patient_num", 7, 1)
	facts := [][3]any{
		{100, 1, "ICD9:250.00"},  // staged code, set member
		{101, 1, "LOINC:4548-4"}, // unstaged code
		{102, 2, "ICD9:250.00"},  // staged code, not in the set
	}
	for _, f := range facts {
		insertRow(t, db, star.TableObservationFact,
			"encounter_num, patient_num, concept_cd", f[0], f[1], f[2])
	}

	got := fetchAll(t, db, query.FactQuery().SQL, 7)
	require.Len(t, got, 1)
	assert.Equal(t, int64(100), got[0][0])

	var n int64
	err = db.QueryRow(query.FactCountQuery().SQL, 7).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFactQueryEmptyPatientSetExec(t *testing.T) {
	db := openCDW(t)
	insertRow(t, db, star.StagingCodeTable, "concept_cd", "ICD9:250.00")
	insertRow(t, db, star.TableObservationFact,
		"encounter_num, patient_num, concept_cd", 100, 1, "ICD9:250.00")
	insertRow(t, db, star.PatientSetCollection,
		"result_instance_id, patient_num", 7, 1)

	// patient set 8 has no members
	got := fetchAll(t, db, query.FactQuery().SQL, 8)
	assert.Empty(t, got)

	var n int64
	err := db.QueryRow(query.FactCountQuery().SQL, 8).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestPatientSetMembershipExec(t *testing.T) {
	db := openCDW(t)
	insertRow(t, db, star.TablePatientDimension, "patient_num", 1)
	insertRow(t, db, star.TablePatientDimension, "patient_num", 2)
	insertRow(t, db, star.PatientSetCollection,
		"result_instance_id, patient_num", 7, 2)

	got := fetchAll(t, db, query.PatientQuery().SQL, 7)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0][0])
}

func TestEncounterTieBreakExec(t *testing.T) {
	db := openCDW(t)
	insertRow(t, db, star.TablePatientDimension, "patient_num", 1)
	insertRow(t, db, star.TablePatientDimension, "patient_num", 2)
	insertRow(t, db, star.PatientSetCollection,
		"result_instance_id, patient_num", 7, 1)
	insertRow(t, db, star.PatientSetCollection,
		"result_instance_id, patient_num", 7, 2)

	visits := [][3]any{
		// patient 1: two visits share the latest start date, the
		// higher encounter id wins
		{10, 1, "2021-05-01 00:00:00"},
		{11, 1, "2021-05-01 00:00:00"},
		{12, 1, "2020-01-01 00:00:00"},
		// patient 2: a single, older visit
		{20, 2, "2019-03-03 00:00:00"},
	}
	for _, v := range visits {
		insertRow(t, db, star.TableVisitDimension,
			"encounter_num, patient_num, start_date", v[0], v[1], v[2])
	}

	got := fetchAll(t, db, query.EncounterQuery().SQL, 7)
	require.Len(t, got, 2)

	byPatient := make(map[int64]int64)
	for _, row := range got {
		byPatient[row[1].(int64)] = row[0].(int64)
	}
	assert.Equal(t, int64(11), byPatient[1])
	assert.Equal(t, int64(20), byPatient[2])
}
