// Copyright 2020-2025 The Roam Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bitemark

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/roam-lang/bitemark/filter"
	"github.com/roam-lang/bitemark/lexer"
	"github.com/roam-lang/bitemark/printer"
	"github.com/roam-lang/bitemark/report"
	"github.com/roam-lang/bitemark/token"
)

// Filter resolves every conditional marker in text against mode and
// returns the surviving source text.
//
// path names the input in diagnostics; it is not opened.
//
// On failure the returned error is a [*report.AsError] holding every
// diagnostic the input produced, and the returned text is empty.
func Filter(path, text string, mode filter.Mode) (string, error) {
	out, _, err := run(path, text, mode, false)
	return out, err
}

// FilterWithSourceMap is like [Filter], but also returns a
// [printer.SourceMap] relating byte offsets in the output back to spans of
// the input, for relocating host-compiler diagnostics.
func FilterWithSourceMap(path, text string, mode filter.Mode) (string, *printer.SourceMap, error) {
	return run(path, text, mode, true)
}

func run(path, text string, mode filter.Mode, wantMap bool) (string, *printer.SourceMap, error) {
	errs := new(report.Report)
	stream := token.NewStream(report.NewFile(path, text))

	lexer.Lex(stream, errs)

	var toks []token.Token
	if !errs.HasErrors() {
		toks, _ = filter.Apply(stream, mode, errs)
	}

	if errs.HasErrors() {
		errs.Sort()
		return "", nil, &report.AsError{Report: *errs}
	}

	if !wantMap {
		return printer.Print(toks), nil, nil
	}
	out, sourceMap := printer.Map(toks)
	return out, sourceMap, nil
}

// Job is a single input to a [Processor].
type Job struct {
	// The name of the input, for diagnostics.
	Path string
	// The text of the roam! invocation body to filter.
	Text string
	// The mode to filter for.
	Mode filter.Mode
}

// Result is the outcome of one [Job].
type Result struct {
	// The Path of the job this result is for.
	Path string

	// The filtered output and its source map; both are zero if Err is
	// non-nil.
	Output    string
	SourceMap *printer.SourceMap

	// A [*report.AsError] if the input failed to filter, or the context's
	// error if the batch was cancelled before this job ran.
	Err error
}

// Processor filters batches of roam! invocation bodies in parallel.
//
// A Processor may be used for any number of batches, concurrently; the
// parallelism limit is shared across all of them.
type Processor struct {
	sem *semaphore.Weighted
}

// NewProcessor creates a Processor that runs at most parallelism jobs at
// once. If parallelism is non-positive, it defaults to
// min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)).
func NewProcessor(parallelism int) *Processor {
	if parallelism <= 0 {
		parallelism = min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	}
	return &Processor{sem: semaphore.NewWeighted(int64(parallelism))}
}

// Process filters every job in the batch and returns one [Result] per job,
// in the same order.
//
// Jobs are independent: one failing does not stop the others. Cancelling
// ctx stops jobs that have not yet started; their results carry the
// context's error.
func (p *Processor) Process(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		results[i].Path = job.Path

		if err := p.sem.Acquire(ctx, 1); err != nil {
			results[i].Err = err
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer p.sem.Release(1)

			out, sourceMap, err := run(job.Path, job.Text, job.Mode, true)
			results[i] = Result{
				Path:      job.Path,
				Output:    out,
				SourceMap: sourceMap,
				Err:       err,
			}
		}()
	}

	wg.Wait()
	return results
}
