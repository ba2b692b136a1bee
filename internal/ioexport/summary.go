package ioexport

import (
	"context"
	"fmt"
	"strings"

	"github.com/cdrkit/dfextract/pkg/star"
)

// dataSummarySQL defines the per-variable rollup view: for each
// requested variable, the number of distinct patients and of facts
// whose concept falls under the variable's path.
var dataSummarySQL = fmt.Sprintf(`CREATE VIEW %s AS
SELECT v.concept_path, v.name_char,
  count(DISTINCT patient_num) AS pat_qty, count(*) AS fact_qty
FROM %s f
JOIN %s cd
  ON cd.concept_cd = f.concept_cd
JOIN %s v
  ON cd.concept_path LIKE (v.concept_path || '%%')
GROUP BY v.concept_path, v.name_char`,
	star.ViewDataSummary,
	star.TableObservationFact,
	star.TableConceptDimension,
	star.TableVariable,
)

// SummaryRow is one line of the dataset rollup.
type SummaryRow struct {
	Name     string
	Patients int64
	Facts    int64
}

// FormatSummary renders rollup rows as the fixed-width text table
// included in the export result and the notification mail.
func FormatSummary(rows []SummaryRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines,
		fmt.Sprintf("%-40s %10s %10s", "Variable", "N. Patient", "N. Obs."))
	for _, r := range rows {
		name := r.Name
		if len(name) > 40 {
			name = name[:40]
		}
		lines = append(lines,
			fmt.Sprintf("%-40s %10d %10d", name, r.Patients, r.Facts))
	}
	return strings.Join(lines, "\n")
}

// summarize creates the data_summary view in the dataset file and
// returns its formatted content.
func (e *exporter) summarize(ctx context.Context) (string, error) {
	if err := e.store.Exec(ctx, dataSummarySQL); err != nil {
		return "", err
	}

	q := fmt.Sprintf(
		"SELECT name_char, pat_qty, fact_qty FROM %s", star.ViewDataSummary,
	)
	cur, err := e.store.Select(ctx, q)
	if err != nil {
		return "", err
	}
	defer cur.Close()

	var rows []SummaryRow
	for cur.Next() {
		vals, err := cur.Values()
		if err != nil {
			return "", err
		}
		var r SummaryRow
		if s, ok := vals[0].(string); ok {
			r.Name = s
		}
		if n, ok := vals[1].(int64); ok {
			r.Patients = n
		}
		if n, ok := vals[2].(int64); ok {
			r.Facts = n
		}
		rows = append(rows, r)
	}
	if err := cur.Err(); err != nil {
		return "", err
	}

	return FormatSummary(rows), nil
}
