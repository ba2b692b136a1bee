package iocdw

import (
	"github.com/cdrkit/dfextract/pkg/extract"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// cursor adapts pgx.Rows to extract.RowCursor.
type cursor struct {
	rows pgx.Rows
	cols []string
}

func newCursor(rows pgx.Rows) extract.RowCursor {
	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	return &cursor{rows: rows, cols: cols}
}

func (c *cursor) Columns() []string { return c.cols }

func (c *cursor) Next() bool { return c.rows.Next() }

// Values returns the current row. NUMERIC columns come back as
// pgtype.Numeric, which downstream drivers cannot bind, so they
// are flattened to float64.
func (c *cursor) Values() ([]any, error) {
	vals, err := c.rows.Values()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if n, ok := v.(pgtype.Numeric); ok {
			if !n.Valid {
				vals[i] = nil
				continue
			}
			f, err := n.Float64Value()
			if err != nil {
				return nil, err
			}
			vals[i] = f.Float64
		}
	}
	return vals, nil
}

func (c *cursor) Err() error { return c.rows.Err() }

func (c *cursor) Close() { c.rows.Close() }
