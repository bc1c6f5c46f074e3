package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/cs-faculty/timetable-csp/internal/domain"
	"github.com/cs-faculty/timetable-csp/pkg/jobs"
)

// BatchResult pairs one batch entry's outcome with any error encountered.
type BatchResult struct {
	Result Result
	Err    error
}

// RunBatch solves a slice of independent schedule requests concurrently
// using the teacher's worker-pool queue, one worker per job. A solve
// failure (infeasible, empty domain, validation) is a legitimate terminal
// outcome recorded in BatchResult.Err, not a transient fault, so the
// handler always reports success to the queue — retrying a deterministic
// infeasibility would only waste the remaining workers' time.
func (o *Orchestrator) RunBatch(ctx context.Context, inputs []domain.ScheduleInput, workers int) []BatchResult {
	if len(inputs) == 0 {
		return nil
	}

	results := make([]BatchResult, len(inputs))
	var wg sync.WaitGroup
	wg.Add(len(inputs))

	handler := func(jobCtx context.Context, job jobs.Job) error {
		i := job.Payload.(int)
		defer wg.Done()
		result, err := o.Solve(jobCtx, inputs[i])
		results[i] = BatchResult{Result: result, Err: err}
		return nil
	}

	queue := jobs.NewQueue("batch-solve", handler, jobs.QueueConfig{
		Workers: workers,
		Logger:  o.logger,
	})
	queue.Start(ctx)
	defer queue.Stop()

	for i := range inputs {
		_ = queue.Enqueue(jobs.Job{ID: fmt.Sprintf("batch-%d", i), Type: "solve", Payload: i})
	}

	wg.Wait()
	return results
}
