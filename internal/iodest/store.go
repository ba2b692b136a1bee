// Package iodest implements the dataset destination store: one
// SQLite file per export, with the star-schema copy managed through
// GORM over the modernc driver.
package iodest

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cdrkit/dfextract/pkg/extract"
	"github.com/cdrkit/dfextract/pkg/star"
	sqlitegorm "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Store implements extract.DatasetStore over a SQLite file.
type Store struct {
	db   *sql.DB
	gdb  *gorm.DB
	path string
}

// Open creates or opens the dataset file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	// GORM rides on the same modernc-backed connection; it is used
	// only for schema management.
	gdb, err := gorm.Open(
		sqlitegorm.New(sqlitegorm.Config{
			DriverName: "sqlite",
			Conn:       db,
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	return &Store{db: db, gdb: gdb, path: path}, nil
}

// Path returns the filesystem location of the dataset.
func (s *Store) Path() string { return s.path }

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// InitSchema drops and recreates the destination tables so a
// re-run of the same request yields a structurally identical
// dataset. Date columns get companion _dt views rendering them as
// ISO-8601 text.
func (s *Store) InitSchema(ctx context.Context) error {
	slog.Info("Initializing dataset schema", "path", s.path)

	for _, t := range star.DateViewTables() {
		drop := fmt.Sprintf("DROP VIEW IF EXISTS %s_dt", t)
		if _, err := s.db.ExecContext(ctx, drop); err != nil {
			return SchemaError(err)
		}
	}
	drop := fmt.Sprintf("DROP VIEW IF EXISTS %s", star.ViewDataSummary)
	if _, err := s.db.ExecContext(ctx, drop); err != nil {
		return SchemaError(err)
	}

	if err := s.gdb.WithContext(ctx).Migrator().
		DropTable(star.AllModels()...); err != nil {
		return SchemaError(err)
	}

	if err := star.Migrate(s.gdb.WithContext(ctx)); err != nil {
		return SchemaError(err)
	}

	for _, t := range star.DateViewTables() {
		if _, err := s.db.ExecContext(ctx, star.DateViewSQL(t)); err != nil {
			return ViewError(t+"_dt", err)
		}
	}

	return nil
}

// maxBindVars is SQLite's default SQLITE_MAX_VARIABLE_NUMBER. A
// multi-row INSERT must not bind more variables than this in one
// statement.
const maxBindVars = 32766

// InsertBatch writes rows into table as one transaction. Wide
// batches are split into several multi-row inserts so each
// statement stays under the bind-variable limit, but the batch
// still commits atomically: on error the table is left without any
// of the batch's rows.
func (s *Store) InsertBatch(
	ctx context.Context,
	table string,
	cols []string,
	rows [][]any,
) error {
	if len(rows) == 0 {
		return nil
	}

	rowsPerStmt := maxBindVars / len(cols)
	placeholder := "(" +
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InsertError(table, err)
	}

	for start := 0; start < len(rows); start += rowsPerStmt {
		end := start + rowsPerStmt
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		valueStrings := make([]string, len(chunk))
		valueArgs := make([]any, 0, len(chunk)*len(cols))
		for i, row := range chunk {
			valueStrings[i] = placeholder
			valueArgs = append(valueArgs, row...)
		}

		ins := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES %s",
			table,
			strings.Join(cols, ", "),
			strings.Join(valueStrings, ", "),
		)
		if _, err := tx.ExecContext(ctx, ins, valueArgs...); err != nil {
			tx.Rollback()
			return InsertError(table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return InsertError(table, err)
	}

	return nil
}

// Exec runs a raw statement, view creation mostly.
func (s *Store) Exec(
	ctx context.Context, sqlStr string, args ...any,
) error {
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return ExecError(sqlStr, err)
	}
	return nil
}

// Select runs a query and returns a forward-only cursor.
func (s *Store) Select(
	ctx context.Context, sqlStr string, args ...any,
) (extract.RowCursor, error) {
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, QueryError(sqlStr, err)
	}
	return newCursor(rows)
}

// Count returns the row count of a table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT count(*) FROM %s", table)
	if err := s.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, QueryError(q, err)
	}
	return n, nil
}
