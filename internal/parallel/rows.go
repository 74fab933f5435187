package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// DefaultChunkSize is the number of rows per task when none is given.
const DefaultChunkSize = 4

// ErrCanceled is returned when a pass stops before visiting every row.
var ErrCanceled = errors.New("parallel: pass canceled")

// RowFunc processes row y. A returned error marks the row failed; the
// pass continues with the remaining rows.
type RowFunc func(y int) error

// ProgressFunc receives the number of finished rows and the row count.
// Returning false cancels the pass. Calls never overlap.
type ProgressFunc func(done, total int64) bool

// Rows configures a ForEachRow pass.
type Rows struct {
	// Height is the number of rows, numbered from 0.
	Height int

	// ChunkSize is the number of rows per task. Zero means
	// DefaultChunkSize.
	ChunkSize int

	// Progress, when set, is called after every finished row.
	Progress ProgressFunc
}

// ForEachRow calls fn for every row on the pool's workers.
//
// Failed rows are collected and returned joined in row order. Once ctx is
// done or Progress returns false no further rows start; rows already
// running finish, and the result also wraps ErrCanceled.
func ForEachRow(ctx context.Context, pool *WorkerPool, rows Rows, fn RowFunc) error {
	if rows.Height <= 0 {
		return nil
	}
	chunk := rows.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	var (
		stop     atomic.Bool
		progress atomic.Int64
		mu       sync.Mutex
		errs     = make([]error, rows.Height)
		total    = int64(rows.Height)
	)

	runRow := func(y int) {
		if stop.Load() {
			return
		}
		if ctx.Err() != nil {
			stop.Store(true)
			return
		}
		errs[y] = fn(y)

		n := progress.Add(1)
		if rows.Progress == nil {
			return
		}
		mu.Lock()
		proceed := rows.Progress(n, total)
		mu.Unlock()
		if !proceed {
			stop.Store(true)
		}
	}

	work := make([]func(), 0, (rows.Height+chunk-1)/chunk)
	for start := 0; start < rows.Height; start += chunk {
		end := min(start+chunk, rows.Height)
		work = append(work, func() {
			for y := start; y < end; y++ {
				runRow(y)
			}
		})
	}
	pool.ExecuteAll(work)

	err := errors.Join(errs...)
	if stop.Load() || progress.Load() < total {
		return errors.Join(ErrCanceled, context.Cause(ctx), err)
	}
	return err
}
