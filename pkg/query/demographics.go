package query

import (
	"fmt"
	"strings"

	"github.com/cdrkit/dfextract/pkg/star"
)

// PatientQuery selects the patient-dimension rows of the patient set
// bound as $1.
func PatientQuery() Query {
	cols := make([]string, len(star.PatientDimensionCols))
	for i, c := range star.PatientDimensionCols {
		cols[i] = "pd." + c
	}

	sql := fmt.Sprintf(`SELECT %s
FROM %s pd
JOIN %s pset
  ON pset.patient_num = pd.patient_num
WHERE pset.result_instance_id = $1`,
		strings.Join(cols, ", "),
		star.TablePatientDimension, star.PatientSetCollection)

	return Query{SQL: sql}
}

// EncounterQuery selects, per patient in the set bound as $1, one
// visit record tied to that patient's most recent visit start time.
// When several visits share the maximum start time, the one with the
// maximum encounter id wins - a deterministic but otherwise
// arbitrary tie-break.
func EncounterQuery() Query {
	cols := make([]string, len(star.VisitDimensionCols))
	for i, c := range star.VisitDimensionCols {
		cols[i] = "vd." + c
	}

	sql := fmt.Sprintf(`SELECT %s
FROM %s vd
JOIN
  (SELECT max(vd.encounter_num) AS encounter_num,
          vd.patient_num AS patient_num
   FROM %s vd
   JOIN
     (SELECT vd.patient_num AS patient_num,
             max(vd.start_date) AS last_visit
      FROM %s vd
      JOIN %s pd
        ON pd.patient_num = vd.patient_num
      JOIN %s pset
        ON pset.patient_num = pd.patient_num
      WHERE pset.result_instance_id = $1
      GROUP BY vd.patient_num) last
     ON vd.patient_num = last.patient_num
    AND vd.start_date = last.last_visit
   GROUP BY vd.patient_num) arb_visit
  ON vd.encounter_num = arb_visit.encounter_num`,
		strings.Join(cols, ", "),
		star.TableVisitDimension, star.TableVisitDimension,
		star.TableVisitDimension, star.TablePatientDimension,
		star.PatientSetCollection)

	return Query{SQL: sql}
}
