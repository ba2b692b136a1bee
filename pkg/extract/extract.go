// Package extract defines the contracts of the dataset extraction
// pipeline. Implementations live in internal/io* packages; this
// package stays free of I/O so the pipeline can be tested against
// fakes.
package extract

import (
	"context"
)

// Concepts holds the metadata variables selected for extraction as
// parallel name/key lists, the shape they arrive in from the plug-in
// request.
type Concepts struct {
	Names []string `json:"names"`
	Keys  []string `json:"keys"`
}

// Len returns the number of requested concepts.
func (c Concepts) Len() int {
	return len(c.Keys)
}

// Request is one queued extraction job. Field validation is the
// caller's concern; the pipeline takes the record as given.
type Request struct {
	// Label is the user-facing name of the patient set.
	Label string `json:"label"`

	// Concepts are the variables to extract.
	Concepts Concepts `json:"concepts"`

	// PatientSet identifies a pre-computed patient collection in the
	// warehouse (qt_patient_set_collection.result_instance_id).
	PatientSet int `json:"patient_set"`

	// Filename is the base name of the dataset file, without
	// directory or extension.
	Filename string `json:"filename"`

	// Username is the requesting user; it selects the output
	// directory and the notification recipient.
	Username string `json:"username"`
}

// Result is the outward result of a successful export.
type Result struct {
	// ID is the patient set identifier the dataset was built from.
	ID int `json:"id"`

	// PatientCount is the number of patient rows in the dataset.
	PatientCount int `json:"n_patient"`

	// Path is the absolute path of the dataset file.
	Path string `json:"filename"`

	// Summary is the fixed-width variable/patient/observation table.
	Summary string `json:"str"`
}

// RowCursor is a forward-only result cursor with named columns. It
// abstracts pgx rows on the warehouse side and database/sql rows on
// the dataset side so ChunkedCopier can move rows between them.
type RowCursor interface {
	// Columns returns the column names of the result set.
	Columns() []string

	// Next advances to the next row, returning false on exhaustion
	// or error.
	Next() bool

	// Values returns the current row.
	Values() ([]any, error)

	// Err reports the error, if any, that stopped iteration.
	Err() error

	// Close releases the cursor.
	Close()
}

// CDW is the capability the pipeline holds on the source clinical
// data warehouse: parameterized statements and cursor-returning
// selects. Connection lifecycle belongs to the caller.
type CDW interface {
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)

	// Select runs a query and returns a forward-only cursor.
	Select(ctx context.Context, sql string, args ...any) (RowCursor, error)

	// SelectInt runs a single-value query (count etc.).
	SelectInt(ctx context.Context, sql string, args ...any) (int64, error)
}

// Stager owns the shared staging tables in the warehouse. Staging is
// clear-then-insert with no isolation: at most one job may use a
// stager's tables at a time, and serialization is the caller's
// responsibility.
type Stager interface {
	// StageConcepts resolves concept keys to paths and replaces the
	// contents of the path staging table. Returns the number of
	// staged rows; zero for an empty concept list is not an error.
	StageConcepts(ctx context.Context, concepts Concepts) (int, error)

	// StageCodes replaces the contents of the code staging table with
	// the distinct concept codes reachable from the staged paths.
	StageCodes(ctx context.Context) (int64, error)
}

// DatasetStore is the capability on the destination dataset file:
// schema management, batched inserts, raw statements for views, and
// cursor-returning selects.
type DatasetStore interface {
	// Path returns the filesystem location of the dataset.
	Path() string

	// InitSchema drops and recreates the destination tables.
	InitSchema(ctx context.Context) error

	// InsertBatch writes rows into table as a single transactional
	// multi-row insert. An error leaves the table without any of the
	// batch's rows.
	InsertBatch(ctx context.Context, table string, cols []string, rows [][]any) error

	// Exec runs a raw statement (view creation and the like).
	Exec(ctx context.Context, sql string, args ...any) error

	// Select runs a query and returns a forward-only cursor.
	Select(ctx context.Context, sql string, args ...any) (RowCursor, error)

	// Count returns the row count of a table.
	Count(ctx context.Context, table string) (int64, error)

	// Close releases the underlying database handle.
	Close() error
}

// Copier streams a cursor into a destination table in bounded
// batches, preserving row order.
type Copier interface {
	// Copy transfers all cursor rows into table. The total, when
	// known, drives progress reporting; pass 0 when unknown.
	Copy(ctx context.Context, cur RowCursor, table string,
		cols []string, total int64, label string) (int64, error)
}

// Extractor runs one extraction job end to end against a warehouse
// and a dataset store.
type Extractor interface {
	Export(ctx context.Context, req Request) (Result, error)
}

// Notifier delivers the completion notice. Implementations must not
// fail the job: delivery errors are logged and swallowed upstream.
type Notifier interface {
	DatasetReady(filename, location, summary string, req Request) error
}
