package pipeline

import (
	"context"
	"sync"
)

// Job is one document to process.
type Job struct {
	DocumentID string
	Path       string
}

// JobResult pairs a job with its outcome.
type JobResult struct {
	Job    Job
	Result *Result
	Err    error
}

// ProcessAll runs the pipeline over jobs with at most maxWorkers documents
// in flight. Document pipelines share no mutable state, so failures are
// independent; every job gets a JobResult in input order.
func (p *Pipeline) ProcessAll(ctx context.Context, jobs []Job, maxWorkers int) []JobResult {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	results := make([]JobResult, len(jobs))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			results[i] = JobResult{Job: job, Err: err}
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, job Job) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := p.Process(ctx, job.DocumentID, job.Path)
			results[i] = JobResult{Job: job, Result: result, Err: err}
		}(i, job)
	}

	wg.Wait()
	return results
}
