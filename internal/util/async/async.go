package async

import (
	"context"
	"errors"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes all tasks concurrently and waits for them to finish.
// Every failure is reported; the returned error joins them in completion order.
func RunParallel(ctx context.Context, tasks []Task) error {
	return RunLimited(ctx, tasks, len(tasks))
}

// RunLimited executes tasks with at most limit of them running at once.
// A limit below one runs the tasks sequentially. Tasks not yet started when
// ctx is cancelled are skipped and reported with the context error.
//
// Example:
//
//	tasks := make([]Task, 0, len(files))
//	for _, f := range files {
//	    tasks = append(tasks, Task{Name: f.Key, Func: upload(f)})
//	}
//	if err := RunLimited(ctx, tasks, 8); err != nil {
//	    return err
//	}
func RunLimited(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	type result struct {
		name string
		err  error
	}

	sem := make(chan struct{}, limit)
	results := make(chan result, len(tasks))

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			results <- result{name: task.Name, err: err}
			continue
		}
		select {
		case <-ctx.Done():
			results <- result{name: task.Name, err: ctx.Err()}
			continue
		case sem <- struct{}{}:
		}

		go func() {
			defer func() { <-sem }()
			results <- result{name: task.Name, err: task.Func(ctx)}
		}()
	}

	var errs []error
	for range len(tasks) {
		res := <-results
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.name, res.err))
		}
	}

	return errors.Join(errs...)
}
