package iocdw

import (
	"context"
	"strings"
	"testing"

	"github.com/cdrkit/dfextract/pkg/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCDW records executed statements.
type fakeCDW struct {
	execs []execCall
	fail  string // substring of SQL that should fail
	err   error
}

type execCall struct {
	sql  string
	args []any
}

func (f *fakeCDW) Exec(
	_ context.Context, sql string, args ...any,
) (int64, error) {
	if f.fail != "" && strings.Contains(sql, f.fail) {
		return 0, f.err
	}
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return int64(len(args) / 2), nil
}

func (f *fakeCDW) Select(
	_ context.Context, _ string, _ ...any,
) (extract.RowCursor, error) {
	return nil, nil
}

func (f *fakeCDW) SelectInt(
	_ context.Context, _ string, _ ...any,
) (int64, error) {
	return 0, nil
}

func TestStageConcepts(t *testing.T) {
	ctx := context.Background()

	concepts := extract.Concepts{
		Names: []string{"apples", "bananas", "cherries"},
		Keys:  []string{`\\tk\a\`, `\\tk\b\`, `\\tk\c\`},
	}

	t.Run("clears then inserts resolved paths", func(t *testing.T) {
		cdw := &fakeCDW{}
		s := NewStager(cdw, 100)

		n, err := s.StageConcepts(ctx, concepts)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		require.Len(t, cdw.execs, 2)
		assert.Equal(t,
			"DELETE FROM global_temp_fact_param_table",
			cdw.execs[0].sql)

		ins := cdw.execs[1]
		assert.Contains(t, ins.sql,
			"INSERT INTO global_temp_fact_param_table (char_param1, char_param2)")
		assert.Equal(t,
			[]any{`\a\`, "apples", `\b\`, "bananas", `\c\`, "cherries"},
			ins.args)
	})

	t.Run("empty concept list only clears", func(t *testing.T) {
		cdw := &fakeCDW{}
		s := NewStager(cdw, 100)

		n, err := s.StageConcepts(ctx, extract.Concepts{})
		require.NoError(t, err)
		assert.Zero(t, n)

		require.Len(t, cdw.execs, 1)
		assert.Contains(t, cdw.execs[0].sql, "DELETE FROM")
	})

	t.Run("splits inserts into batches", func(t *testing.T) {
		cdw := &fakeCDW{}
		s := NewStager(cdw, 2)

		n, err := s.StageConcepts(ctx, concepts)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		// one clear, two insert batches (2 rows + 1 row)
		require.Len(t, cdw.execs, 3)
		assert.Len(t, cdw.execs[1].args, 4)
		assert.Len(t, cdw.execs[2].args, 2)
		// placeholders restart per statement
		assert.Contains(t, cdw.execs[2].sql, "($1, $2)")
	})

	t.Run("malformed key fails before touching storage", func(t *testing.T) {
		cdw := &fakeCDW{}
		s := NewStager(cdw, 100)

		_, err := s.StageConcepts(ctx, extract.Concepts{
			Names: []string{"bad"},
			Keys:  []string{`nope`},
		})
		require.Error(t, err)
		assert.Empty(t, cdw.execs)
	})
}

func TestStageCodes(t *testing.T) {
	ctx := context.Background()

	t.Run("clears then repopulates the code table", func(t *testing.T) {
		cdw := &fakeCDW{}
		s := NewStager(cdw, 100)

		_, err := s.StageCodes(ctx)
		require.NoError(t, err)

		require.Len(t, cdw.execs, 2)
		assert.Equal(t, "DELETE FROM query_global_temp", cdw.execs[0].sql)
		assert.Contains(t, cdw.execs[1].sql,
			"INSERT INTO query_global_temp (concept_cd)")
	})
}
