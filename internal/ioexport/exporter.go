// Package ioexport runs an extraction job end to end: staging in
// the warehouse, schema creation in the dataset file, and the
// ordered sequence of copies that fills it.
package ioexport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cdrkit/dfextract/pkg/extract"
	"github.com/cdrkit/dfextract/pkg/query"
	"github.com/cdrkit/dfextract/pkg/star"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

type exporter struct {
	cdw    extract.CDW
	store  extract.DatasetStore
	stager extract.Stager
	copier extract.Copier
}

// New wires an extract.Extractor from its capabilities.
func New(
	cdw extract.CDW,
	store extract.DatasetStore,
	stager extract.Stager,
	copier extract.Copier,
) extract.Extractor {
	return &exporter{cdw: cdw, store: store, stager: stager, copier: copier}
}

// Export runs the job. Steps run in a fixed order and there is no
// rollback on failure: a partial dataset file may remain, and the
// next run of the same request recreates the schema from scratch.
func (e *exporter) Export(
	ctx context.Context, req extract.Request,
) (extract.Result, error) {
	var res extract.Result
	startedAt := time.Now()

	gn.Info(
		"Exporting <em>%d</em> concepts from patient set #%d '%s'",
		req.Concepts.Len(), req.PatientSet, req.Label,
	)

	if _, err := e.stager.StageConcepts(ctx, req.Concepts); err != nil {
		return res, err
	}

	if err := e.store.InitSchema(ctx); err != nil {
		return res, err
	}

	if err := e.exportJob(ctx, req, startedAt); err != nil {
		return res, JobError(err)
	}

	if err := e.exportFacts(ctx, req); err != nil {
		return res, FactsError(err)
	}

	if err := e.exportTerms(ctx); err != nil {
		return res, TermsError(err)
	}

	patQty, err := e.exportPatients(ctx, req)
	if err != nil {
		return res, PatientsError(err)
	}

	summary, err := e.summarize(ctx)
	if err != nil {
		return res, SummaryError(err)
	}
	slog.Info("Data summary", "summary", summary)

	res = extract.Result{
		ID:           req.PatientSet,
		PatientCount: int(patQty),
		Path:         e.store.Path(),
		Summary:      summary,
	}
	return res, nil
}

// exportJob writes the job record and the variable rows tying each
// requested concept key to its resolved dictionary path.
func (e *exporter) exportJob(
	ctx context.Context, req extract.Request, startedAt time.Time,
) error {
	enc := gnfmt.GNjson{}
	conceptsJSON, err := enc.Encode(req.Concepts)
	if err != nil {
		return err
	}

	datasetUUID := gnuuid.New(
		fmt.Sprintf("%d:%s", req.PatientSet, req.Filename),
	).String()

	jobRow := []any{
		uuid.NewString(), datasetUUID, req.PatientSet, req.Label,
		string(conceptsJSON), req.Filename, req.Username, startedAt,
	}
	err = e.store.InsertBatch(
		ctx, star.TableJob, star.JobCols, [][]any{jobRow},
	)
	if err != nil {
		return err
	}

	paths, err := query.ResolvePaths(req.Concepts.Keys)
	if err != nil {
		return err
	}

	varRows := make([][]any, len(paths))
	for i, path := range paths {
		name := req.Concepts.Names[i]
		v := extract.Variable{
			ID:          i,
			ItemKey:     req.Concepts.Keys[i],
			ConceptPath: path,
			NameChar:    name,
			Name:        extract.StripCounts(name),
		}
		varRows[i] = v.Row()
	}
	return e.store.InsertBatch(
		ctx, star.TableVariable, star.VariableCols, varRows,
	)
}

// exportFacts stages the distinct concept codes and copies the
// matching observation facts of the patient set.
func (e *exporter) exportFacts(
	ctx context.Context, req extract.Request,
) error {
	n, err := e.stager.StageCodes(ctx)
	if err != nil {
		return err
	}
	slog.Info("Staged concept codes", "codes", n)

	total, err := e.cdw.SelectInt(
		ctx, query.FactCountQuery().SQL, req.PatientSet,
	)
	if err != nil {
		return err
	}

	cur, err := e.cdw.Select(ctx, query.FactQuery().SQL, req.PatientSet)
	if err != nil {
		return err
	}
	_, err = e.copier.Copy(
		ctx, cur, star.TableObservationFact, star.ObservationFactCols,
		total, "patient data",
	)
	return err
}

// exportTerms copies the matched concept and modifier dictionary
// slices.
func (e *exporter) exportTerms(ctx context.Context) error {
	cur, err := e.cdw.Select(ctx, query.ConceptTermQuery().Ordered())
	if err != nil {
		return err
	}
	_, err = e.copier.Copy(
		ctx, cur, star.TableConceptDimension, star.ConceptTermCols,
		0, "concept terms",
	)
	if err != nil {
		return err
	}

	cur, err = e.cdw.Select(ctx, query.ModifierTermQuery().Ordered())
	if err != nil {
		return err
	}
	_, err = e.copier.Copy(
		ctx, cur, star.TableModifierDimension, star.ModifierTermCols,
		0, "modifier terms",
	)
	return err
}

// exportPatients copies demographics: the patient rows of the set
// and one last-visit row per patient. Returns the patient count.
func (e *exporter) exportPatients(
	ctx context.Context, req extract.Request,
) (int64, error) {
	cur, err := e.cdw.Select(ctx, query.PatientQuery().SQL, req.PatientSet)
	if err != nil {
		return 0, err
	}
	_, err = e.copier.Copy(
		ctx, cur, star.TablePatientDimension, star.PatientDimensionCols,
		0, "demographics (patient_dimension)",
	)
	if err != nil {
		return 0, err
	}

	cur, err = e.cdw.Select(ctx, query.EncounterQuery().SQL, req.PatientSet)
	if err != nil {
		return 0, err
	}
	_, err = e.copier.Copy(
		ctx, cur, star.TableVisitDimension, star.VisitDimensionCols,
		0, "demographics (visit_dimension)",
	)
	if err != nil {
		return 0, err
	}

	return e.store.Count(ctx, star.TablePatientDimension)
}
