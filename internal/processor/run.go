package processor

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// run executes jobs across the worker pool. The first failure cancels the
// group context; queued jobs observe the cancellation and report as
// skipped while in-flight ones finish. All outcomes drain through the
// results channel into the summary.
func (p *Processor) run(ctx context.Context, jobs []Job, process func(Job) Result) (Summary, error) {
	results := make(chan Result, len(jobs))
	done := make(chan struct{})

	var (
		summary  Summary
		failures error
	)

	go func() {
		defer close(done)

		for result := range results {
			switch {
			case result.Skipped:
				summary.Skipped++

				p.logger.Debug("skipped", zap.String("input", result.Input))
			case result.Error != nil:
				summary.Failed++
				failures = multierr.Append(failures, fmt.Errorf("%q: %w", result.Input, result.Error))

				p.logger.Error("failed",
					zap.String("input", result.Input),
					zap.Error(result.Error))
			default:
				summary.Processed++
				summary.Bytes += result.OutputSize

				p.logger.Debug("processed",
					zap.String("input", result.Input),
					zap.String("output", result.Output),
					zap.Int64("size", result.OutputSize))
			}
		}
	}()

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(p.parallel)

	for _, job := range jobs {
		job := job

		group.Go(func() error {
			if gctx.Err() != nil {
				results <- Result{Input: job.Input, Skipped: true}

				return nil
			}

			result := process(job)
			results <- result

			return result.Error
		})
	}

	// The first error is also collected through the results channel.
	_ = group.Wait()

	close(results)

	<-done // Wait for the collector to finish

	if failures != nil {
		return summary, fmt.Errorf("processing %d of %d files failed: %w", summary.Failed, len(jobs), failures)
	}

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("operation canceled: %w", err)
	}

	return summary, nil
}
