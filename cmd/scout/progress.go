// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// batchProgress prints how many batch queries have been answered.
// It is safe for use by concurrent workers.
type batchProgress struct {
	out       io.Writer
	total     int
	done      int
	failed    int
	startTime time.Time
	mu        sync.Mutex
}

func newBatchProgress(out io.Writer, total int) *batchProgress {
	return &batchProgress{out: out, total: total, startTime: time.Now()}
}

// record counts one answered query and redraws the progress line.
func (p *batchProgress) record(failed bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done < p.total {
		p.done++
	}
	if failed {
		p.failed++
	}
	p.report()
}

// finish ends the progress line.
func (p *batchProgress) finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
}

// report must be called with the lock held.
func (p *batchProgress) report() {
	rate := float64(p.done) / time.Since(p.startTime).Seconds()
	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.done) / float64(p.total) * 100.0
	}
	fmt.Fprintf(p.out, "\rQueries: %d/%d (%.1f%%), failed: %d - %.1f queries/s",
		p.done, p.total, percentage, p.failed, rate)
}
