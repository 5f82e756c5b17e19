package supervisor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task is one long-lived unit of work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// ExitError reports a task that returned while the process was still running.
type ExitError struct {
	Task string
	Err  error // nil when the task returned cleanly
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("task %s exited unexpectedly", e.Task)
	}
	return fmt.Sprintf("task %s failed: %v", e.Task, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// PanicError reports a task that panicked.
type PanicError struct {
	Task  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %s panicked: %v", e.Task, e.Value)
}

// Run starts every task and blocks until all have returned. It returns nil
// when the tasks stopped because ctx was cancelled, otherwise the first
// abnormal termination.
func Run(ctx context.Context, logger *zap.Logger, tasks ...Task) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			logger.Info("task started", zap.String("task", task.Name))
			err := runTask(gctx, task)
			if err != nil {
				logger.Error("task terminated", zap.String("task", task.Name), zap.Error(err))
			} else {
				logger.Info("task stopped", zap.String("task", task.Name))
			}
			return err
		})
	}

	return g.Wait()
}

// runTask runs one task, converting early returns and panics into errors.
func runTask(ctx context.Context, task Task) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Task: task.Name, Value: v, Stack: debug.Stack()}
		}
	}()

	runErr := task.Run(ctx)
	if ctx.Err() != nil && (runErr == nil || errors.Is(runErr, ctx.Err())) {
		return nil
	}
	return &ExitError{Task: task.Name, Err: runErr}
}
