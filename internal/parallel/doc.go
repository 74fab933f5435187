// Package parallel runs row-partitioned image passes on a pool of worker
// goroutines.
//
// Rows are grouped into small chunks and handed to a WorkerPool whose
// workers steal from each other's queues, which balances passes where the
// per-row cost varies. ForEachRow adds the bookkeeping shared by every
// pass: a sticky failure status, a progress counter reported through a
// serialized callback, and cooperative cancellation.
//
// Thread safety: WorkerPool is safe for concurrent use. A RowFunc is
// called concurrently for distinct rows and never twice for one row.
package parallel
