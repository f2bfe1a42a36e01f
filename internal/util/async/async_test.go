package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParallel_Success(t *testing.T) {
	var count atomic.Int32

	tasks := make([]Task, 0, 3)
	for _, name := range []string{"task1", "task2", "task3"} {
		tasks = append(tasks, Task{Name: name, Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}})
	}

	require.NoError(t, RunParallel(context.Background(), tasks))
	assert.Equal(t, int32(3), count.Load())
}

func TestRunParallel_EmptyTasks(t *testing.T) {
	assert.NoError(t, RunParallel(context.Background(), nil))
	assert.NoError(t, RunLimited(context.Background(), []Task{}, 4))
}

func TestRunParallel_CollectsAllErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	tasks := []Task{
		{Name: "ok", Func: func(_ context.Context) error { return nil }},
		{Name: "a", Func: func(_ context.Context) error { return errA }},
		{Name: "b", Func: func(_ context.Context) error { return errB }},
	}

	err := RunParallel(context.Background(), tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "a: a failed")
}

func TestRunLimited_RespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32

	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = Task{Name: "t", Func: func(_ context.Context) error {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return nil
		}}
	}

	require.NoError(t, RunLimited(context.Background(), tasks, 3))
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Positive(t, peak.Load())
}

func TestRunLimited_ZeroLimitRunsSequentially(t *testing.T) {
	var inFlight, peak atomic.Int32
	tasks := make([]Task, 4)
	for i := range tasks {
		tasks[i] = Task{Name: "t", Func: func(_ context.Context) error {
			n := inFlight.Add(1)
			if n > peak.Load() {
				peak.Store(n)
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
			return nil
		}}
	}

	require.NoError(t, RunLimited(context.Background(), tasks, 0))
	assert.Equal(t, int32(1), peak.Load())
}

func TestRunLimited_CancelledContextSkipsTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	tasks := []Task{
		{Name: "a", Func: func(_ context.Context) error { ran.Add(1); return nil }},
		{Name: "b", Func: func(_ context.Context) error { ran.Add(1); return nil }},
	}

	err := RunLimited(ctx, tasks, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), ran.Load())
}
