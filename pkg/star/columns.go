package star

import (
	"fmt"
	"strings"
)

// Column lists drive both the warehouse-side SELECT projections and
// the dataset-side batched inserts, so transferred rows line up by
// position.

// PatientDimensionCols are the patient_dimension columns, in table
// order.
var PatientDimensionCols = []string{
	"patient_num", "vital_status_cd", "birth_date", "death_date",
	"sex_cd", "age_in_years_num", "language_cd", "race_cd",
	"marital_status_cd", "religion_cd", "zip_cd", "statecityzip_path",
	"update_date", "download_date", "import_date", "sourcesystem_cd",
	"upload_id",
}

// VisitDimensionCols are the visit_dimension columns, in table order.
var VisitDimensionCols = []string{
	"encounter_num", "patient_num", "active_status_cd", "start_date",
	"end_date", "inout_cd", "location_cd", "location_path",
	"length_of_stay", "update_date", "download_date", "import_date",
	"sourcesystem_cd", "upload_id",
}

// ObservationFactCols are the observation_fact columns, in table
// order.
var ObservationFactCols = []string{
	"encounter_num", "patient_num", "concept_cd", "provider_id",
	"start_date", "modifier_cd", "instance_num", "valtype_cd",
	"tval_char", "nval_num", "valueflag_cd", "quantity_num",
	"units_cd", "end_date", "location_cd", "confidence_num",
	"update_date", "download_date", "import_date", "sourcesystem_cd",
	"upload_id",
}

// ConceptTermCols is the projection of a concept-dictionary term
// query and the matching destination insert columns.
var ConceptTermCols = []string{"concept_path", "concept_cd", "name_char"}

// ModifierTermCols is the projection of a modifier-dictionary term
// query and the matching destination insert columns.
var ModifierTermCols = []string{"modifier_path", "modifier_cd", "name_char"}

// VariableCols are the variable-table insert columns populated at
// export time.
var VariableCols = []string{"id", "item_key", "concept_path", "name_char", "name"}

// JobCols are the job-table insert columns.
var JobCols = []string{
	"run_id", "dataset_uuid", "pset", "label", "concepts", "name",
	"username", "started_at",
}

// dateCols lists, per table, the columns rendered as ISO-8601 text in
// the table's _dt view.
var dateCols = map[string][]string{
	TablePatientDimension: {"birth_date", "death_date", "update_date",
		"download_date", "import_date"},
	TableVisitDimension: {"start_date", "end_date", "update_date",
		"download_date", "import_date"},
	TableObservationFact: {"start_date", "end_date", "update_date",
		"download_date", "import_date"},
}

// DateViewTables returns the tables that get a _dt companion view.
func DateViewTables() []string {
	return []string{
		TablePatientDimension,
		TableVisitDimension,
		TableObservationFact,
	}
}

// DateViewSQL returns the CREATE VIEW statement for a table's _dt
// view: the same rows with date columns unpacked to ISO-8601 text.
func DateViewSQL(table string) string {
	var cols []string
	switch table {
	case TablePatientDimension:
		cols = PatientDimensionCols
	case TableVisitDimension:
		cols = VisitDimensionCols
	case TableObservationFact:
		cols = ObservationFactCols
	}

	dates := make(map[string]bool)
	for _, c := range dateCols[table] {
		dates[c] = true
	}

	exprs := make([]string, len(cols))
	for i, c := range cols {
		if dates[c] {
			exprs[i] = fmt.Sprintf("datetime(%s) AS %s", c, c)
		} else {
			exprs[i] = c
		}
	}

	return fmt.Sprintf("CREATE VIEW %s_dt AS SELECT %s FROM %s",
		table, strings.Join(exprs, ", "), table)
}
