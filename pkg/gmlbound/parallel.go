package gmlbound

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// BatchOptions controls parallel processing and error handling.
type BatchOptions struct {
	// Parallel enables concurrent document processing.
	// Features within one document are always processed in order.
	Parallel bool

	// Workers is the number of worker goroutines. 0 means runtime.NumCPU().
	Workers int

	// SkipErrors continues past documents that cannot be read.
	// When false, the first error stops the batch.
	SkipErrors bool

	// Progress is called after each document with (processed, total).
	Progress func(processed, total int)

	// ErrorLog receives one line per failed document.
	ErrorLog io.Writer
}

// DefaultBatchOptions returns batch options with defaults.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Progress:   nil,
		ErrorLog:   nil,
	}
}

// SinkFactory returns the sink for a document path. It may return the
// same goroutine-safe sink for every path.
type SinkFactory func(path string) Sink

// BatchResult aggregates a batch run.
type BatchResult struct {
	RunID string

	// Documents holds results in input order; failed documents are absent.
	Documents []*DocumentResult

	// Completed is true when every document was attempted.
	Completed bool

	Features int
	Polygons int
	Labels   int
	Warnings int
}

func (r *BatchResult) add(doc *DocumentResult) {
	r.Documents = append(r.Documents, doc)
	r.Features += doc.Features
	r.Polygons += doc.Polygons
	r.Labels += doc.Labels
	r.Warnings += len(doc.Warnings)
}

// ProcessFiles processes documents from disk using a worker pool.
//
// Results keep input order regardless of completion order. Document
// warnings stay in each DocumentResult; the returned errors are read
// failures and cancellation. With SkipErrors false the first failure
// cancels the remaining work; no sink receives primitives after return.
//
// Example:
//
//	p := gmlbound.NewProcessor(gmlbound.DefaultOptions())
//	col := gmlbound.NewCollection()
//	res, errs := gmlbound.ProcessFiles(ctx, p, paths,
//	    func(string) gmlbound.Sink { return col },
//	    gmlbound.DefaultBatchOptions())
//	fmt.Printf("%d documents, %d polygons, %d errors\n",
//	    len(res.Documents), res.Polygons, len(errs))
func ProcessFiles(ctx context.Context, p *Processor, paths []string, newSink SinkFactory, opts BatchOptions) (*BatchResult, []error) {
	result := &BatchResult{RunID: uuid.NewString()}
	log := p.log.With("run", result.RunID)

	if len(paths) == 0 {
		result.Completed = true
		return result, nil
	}

	if !opts.Parallel {
		return processSerial(ctx, p, paths, newSink, opts, result)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type docResult struct {
		index int
		doc   *DocumentResult
		err   error
	}

	// Stopping on error cancels runCtx so workers quit before we return.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, len(paths))
	results := make(chan docResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				if err := runCtx.Err(); err != nil {
					results <- docResult{index: index, err: err}
					continue
				}
				path := paths[index]
				doc, err := p.ProcessFile(runCtx, path, newSink(path))
				results <- docResult{index: index, doc: doc, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	docs := make(map[int]*DocumentResult)
	var errs []error
	processed := 0

	for r := range results {
		processed++
		if opts.Progress != nil {
			opts.Progress(processed, len(paths))
		}

		if r.err != nil {
			err := fmt.Errorf("%s: %w", paths[r.index], r.err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error processing document: %v\n", err)
			}
			if !opts.SkipErrors {
				log.Error("batch.stopped", "err", err)
				cancel()
				for range results {
				}
				return result, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		docs[r.index] = r.doc
	}

	for i := range paths {
		if doc, ok := docs[i]; ok {
			result.add(doc)
		}
	}
	result.Completed = ctx.Err() == nil
	log.Info("batch.done", "documents", len(result.Documents), "errors", len(errs))
	return result, errs
}

// processSerial handles documents one at a time (Parallel=false).
func processSerial(ctx context.Context, p *Processor, paths []string, newSink SinkFactory, opts BatchOptions, result *BatchResult) (*BatchResult, []error) {
	var errs []error

	for i, path := range paths {
		if opts.Progress != nil {
			opts.Progress(i, len(paths))
		}

		if err := ctx.Err(); err != nil {
			return result, append(errs, err)
		}

		doc, err := p.ProcessFile(ctx, path, newSink(path))
		if err != nil {
			err := fmt.Errorf("%s: %w", path, err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error processing document: %v\n", err)
			}
			if !opts.SkipErrors {
				return result, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		result.add(doc)
	}

	if opts.Progress != nil {
		opts.Progress(len(paths), len(paths))
	}
	result.Completed = true
	return result, errs
}
