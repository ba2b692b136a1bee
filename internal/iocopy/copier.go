// Package iocopy moves rows between the warehouse and the dataset
// file in transactional batches.
package iocopy

import (
	"context"
	"log/slog"
	"time"

	"github.com/cdrkit/dfextract/pkg/extract"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

type copier struct {
	store     extract.DatasetStore
	batchSize int
	withBar   bool
}

// New returns an extract.Copier writing to store in batches of
// batchSize rows. When withBar is true and the row total is known,
// a progress bar is rendered on stderr.
func New(
	store extract.DatasetStore,
	batchSize int,
	withBar bool,
) extract.Copier {
	if batchSize < 1 {
		batchSize = 1
	}
	return &copier{store: store, batchSize: batchSize, withBar: withBar}
}

// Copy drains cur into table. Each batch commits independently, so
// a mid-copy failure leaves the rows of completed batches in place.
func (c *copier) Copy(
	ctx context.Context,
	cur extract.RowCursor,
	table string,
	cols []string,
	total int64,
	label string,
) (int64, error) {
	defer cur.Close()

	start := time.Now()
	var bar *pb.ProgressBar
	if c.withBar && total > 0 {
		bar = pb.Full.Start64(total)
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	var copied int64
	batch := make([][]any, 0, c.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := c.store.InsertBatch(ctx, table, cols, batch); err != nil {
			return InsertError(table, err)
		}
		copied += int64(len(batch))
		if bar != nil {
			bar.SetCurrent(copied)
		}
		batch = batch[:0]
		return nil
	}

	for cur.Next() {
		vals, err := cur.Values()
		if err != nil {
			return copied, ReadError(table, err)
		}
		row := make([]any, len(vals))
		copy(row, vals)
		batch = append(batch, row)
		if len(batch) == c.batchSize {
			if err := flush(); err != nil {
				return copied, err
			}
		}
	}
	if err := cur.Err(); err != nil {
		return copied, ReadError(table, err)
	}
	if err := flush(); err != nil {
		return copied, err
	}
	if bar != nil {
		bar.Finish()
	}

	dur := time.Since(start).Round(time.Millisecond)
	gn.Info(
		"Copied <em>%s</em> rows of %s in %s",
		humanize.Comma(copied), label, dur,
	)
	slog.Info("Copy finished",
		"table", table, "rows", copied, "duration", dur)

	return copied, nil
}
