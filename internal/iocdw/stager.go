package iocdw

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cdrkit/dfextract/pkg/extract"
	"github.com/cdrkit/dfextract/pkg/query"
	"github.com/cdrkit/dfextract/pkg/star"
)

// stager owns the warehouse-side staging tables. Staging is
// clear-then-insert with no isolation; callers serialize jobs that
// share a staging table set.
type stager struct {
	cdw       extract.CDW
	batchSize int
}

// NewStager creates a Stager over the given warehouse capability.
func NewStager(cdw extract.CDW, batchSize int) extract.Stager {
	return &stager{cdw: cdw, batchSize: batchSize}
}

// StageConcepts resolves concept keys and replaces the path staging
// table's contents with (path, name) rows. An empty concept list
// leaves the table empty, which is not an error.
func (s *stager) StageConcepts(
	ctx context.Context,
	concepts extract.Concepts,
) (int, error) {
	paths, err := query.ResolvePaths(concepts.Keys)
	if err != nil {
		return 0, err
	}

	clear := fmt.Sprintf("DELETE FROM %s", star.StagingConceptTable)
	if _, err := s.cdw.Exec(ctx, clear); err != nil {
		return 0, StageClearError(star.StagingConceptTable, err)
	}

	if len(paths) == 0 {
		slog.Debug("No concepts to stage")
		return 0, nil
	}

	for i := 0; i < len(paths); i += s.batchSize {
		end := slices.Min([]int{i + s.batchSize, len(paths)})

		var valueStrings []string
		var valueArgs []any
		argIdx := 1

		for j := i; j < end; j++ {
			valueStrings = append(
				valueStrings,
				fmt.Sprintf("($%d, $%d)", argIdx, argIdx+1),
			)
			valueArgs = append(valueArgs, paths[j], concepts.Names[j])
			argIdx += 2
		}

		ins := fmt.Sprintf(
			"INSERT INTO %s (char_param1, char_param2) VALUES %s",
			star.StagingConceptTable,
			strings.Join(valueStrings, ", "),
		)

		if _, err := s.cdw.Exec(ctx, ins, valueArgs...); err != nil {
			return 0, StageInsertError(star.StagingConceptTable, err)
		}
	}

	slog.Info("Staged concept paths", "count", len(paths))
	return len(paths), nil
}

// StageCodes replaces the code staging table's contents with the
// distinct concept codes reachable from the staged paths.
func (s *stager) StageCodes(ctx context.Context) (int64, error) {
	clear := fmt.Sprintf("DELETE FROM %s", star.StagingCodeTable)
	if _, err := s.cdw.Exec(ctx, clear); err != nil {
		return 0, StageClearError(star.StagingCodeTable, err)
	}

	n, err := s.cdw.Exec(ctx, query.CodeInsertQuery().SQL)
	if err != nil {
		return 0, StageInsertError(star.StagingCodeTable, err)
	}

	slog.Info("Staged distinct concept codes", "count", n)
	return n, nil
}
