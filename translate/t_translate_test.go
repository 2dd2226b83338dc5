// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package translate

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
)

func Test_batch_runs_every_job(tst *testing.T) {
	chk.PrintTitle("translate_batch_runs_every_job")
	var ran int32
	jobs := make([]Job, 10)
	for i := range jobs {
		i := i
		jobs[i] = Job{
			Name: fmt.Sprintf("job-%d", i),
			Run: func(ctx context.Context) error {
				atomic.AddInt32(&ran, 1)
				if i == 3 {
					return fmt.Errorf("deck %d failed to parse", i)
				}
				return nil
			},
		}
	}

	results := Batch(context.Background(), jobs, 4)
	if len(results) != len(jobs) {
		tst.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}
	if ran != int32(len(jobs)) {
		tst.Errorf("expected every job to run, got %d", ran)
	}
	for i, r := range results {
		if r.Name != jobs[i].Name {
			tst.Errorf("expected result %d to keep job order, got name %q", i, r.Name)
		}
		if i == 3 {
			if r.Err == nil {
				tst.Errorf("expected job 3 to report its error")
			}
		} else if r.Err != nil {
			tst.Errorf("expected job %d to succeed, got %v", i, r.Err)
		}
	}
}

func Test_batch_honours_cancellation(tst *testing.T) {
	chk.PrintTitle("translate_batch_honours_cancellation")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{
		Name: "never-starts",
		Run: func(ctx context.Context) error {
			time.Sleep(time.Millisecond)
			return nil
		},
	}}
	results := Batch(ctx, jobs, 1)
	if results[0].Err == nil {
		tst.Errorf("expected a cancelled batch to report ctx.Err() on its jobs")
	}
}

func Test_batch_defaults_to_one_worker(tst *testing.T) {
	chk.PrintTitle("translate_batch_defaults_to_one_worker")
	jobs := []Job{{Name: "a", Run: func(ctx context.Context) error { return nil }}}
	results := Batch(context.Background(), jobs, 0)
	if len(results) != 1 || results[0].Err != nil {
		tst.Errorf("expected a single job to run cleanly with workers=0 treated as 1")
	}
}
