package iodest

import (
	"database/sql"
)

// cursor adapts *sql.Rows to the extract.RowCursor contract.
type cursor struct {
	rows *sql.Rows
	cols []string
}

func newCursor(rows *sql.Rows) (*cursor, error) {
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, QueryError("columns", err)
	}
	return &cursor{rows: rows, cols: cols}, nil
}

func (c *cursor) Columns() []string { return c.cols }

func (c *cursor) Next() bool { return c.rows.Next() }

func (c *cursor) Values() ([]any, error) {
	vals := make([]any, len(c.cols))
	ptrs := make([]any, len(c.cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		return nil, QueryError("scan", err)
	}
	return vals, nil
}

func (c *cursor) Err() error { return c.rows.Err() }

func (c *cursor) Close() { c.rows.Close() }
