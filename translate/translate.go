// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package translate runs independent deck-translation jobs concurrently,
// one goroutine per worker slot. It plays the role the teacher's
// mpi.Start/mpi.Rank/mpi.Stop lifecycle plays for distributing FE
// assembly across MPI ranks, but for this single-process CLI there is no
// distributed solver to rank: each Job is a whole, independent
// translation of one input deck, and nothing is shared between them but
// the read-only process-wide configuration (spec.md §5).
package translate

import (
	"context"
	"sync"
)

// Job is one independent unit of work: translating a single deck. Run
// should build and tear down its own IM, never touch another Job's
// state, and respect ctx cancellation on every blocking step, mirroring
// the "IM itself is not shared between threads" rule.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result pairs a Job's Name with the error its Run returned, nil on
// success.
type Result struct {
	Name string
	Err  error
}

// Batch runs jobs across at most workers goroutines, in place of the
// teacher's one-rank-per-process MPI loop, and returns one Result per
// job in the same order jobs was given — the caller-visible order is
// deterministic even though execution is not. If ctx is cancelled, jobs
// not yet started are skipped and recorded with ctx.Err().
func Batch(ctx context.Context, jobs []Job, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(jobs))
	indices := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				select {
				case <-ctx.Done():
					results[i] = Result{Name: jobs[i].Name, Err: ctx.Err()}
				default:
					results[i] = Result{Name: jobs[i].Name, Err: jobs[i].Run(ctx)}
				}
			}
		}()
	}

	for i := range jobs {
		indices <- i
	}
	close(indices)
	wg.Wait()
	return results
}
