// Package supervisor runs the pipeline stages, classifies how each one ended and reports it.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status classifies how a task ended.
type Status int

const (
	StatusNormal Status = iota
	StatusCancelled
	StatusFailed
	StatusPanicked
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	case StatusPanicked:
		return "panicked"
	default:
		return "unknown"
	}
}

// Outcome is the result of one supervised task.
type Outcome struct {
	Name   string
	Status Status
	Err    error
}

// PanicError carries a value recovered from a panicking task.
type PanicError struct {
	Task  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %s panicked: %v", e.Task, e.Value)
}

// Supervisor starts tasks on a shared context. A failing or panicking task cancels the others;
// nothing is restarted.
type Supervisor struct {
	group  *errgroup.Group
	ctx    context.Context
	logger *zap.Logger

	mu       sync.Mutex
	outcomes []Outcome
}

// New returns a Supervisor and the context its tasks run with.
func New(ctx context.Context, logger *zap.Logger) (*Supervisor, context.Context) {
	group, gctx := errgroup.WithContext(ctx)
	return &Supervisor{
		group:  group,
		ctx:    gctx,
		logger: logger.Named("supervisor"),
	}, gctx
}

// Go starts task under name.
func (s *Supervisor) Go(name string, task func(ctx context.Context) error) {
	idx := s.reserve(name)
	s.logger.Info("task started", zap.String("task", name))

	s.group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Task: name, Value: r, Stack: debug.Stack()}
			}
			outcome := s.classify(name, err)
			s.record(idx, outcome)
			if outcome.Status == StatusNormal || outcome.Status == StatusCancelled {
				err = nil
			}
		}()
		return task(s.ctx)
	})
}

// Wait blocks until every task has returned, logs each outcome and returns them in start order
// together with the first failure, if any.
func (s *Supervisor) Wait() ([]Outcome, error) {
	err := s.group.Wait()

	s.mu.Lock()
	outcomes := append([]Outcome(nil), s.outcomes...)
	s.mu.Unlock()

	for _, o := range outcomes {
		fields := []zap.Field{zap.String("task", o.Name), zap.Stringer("status", o.Status)}
		switch o.Status {
		case StatusNormal, StatusCancelled:
			s.logger.Info("task finished", fields...)
		case StatusFailed:
			s.logger.Error("task failed", append(fields, zap.Error(o.Err))...)
		case StatusPanicked:
			var pe *PanicError
			if errors.As(o.Err, &pe) {
				fields = append(fields, zap.ByteString("stack", pe.Stack))
			}
			s.logger.Error("task panicked", append(fields, zap.Error(o.Err))...)
		}
	}
	return outcomes, err
}

func (s *Supervisor) reserve(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, Outcome{Name: name})
	return len(s.outcomes) - 1
}

func (s *Supervisor) record(idx int, o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes[idx] = o
}

func (s *Supervisor) classify(name string, err error) Outcome {
	var pe *PanicError
	switch {
	case err == nil:
		return Outcome{Name: name, Status: StatusNormal}
	case errors.As(err, &pe):
		return Outcome{Name: name, Status: StatusPanicked, Err: err}
	case s.ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		return Outcome{Name: name, Status: StatusCancelled, Err: err}
	default:
		return Outcome{Name: name, Status: StatusFailed, Err: err}
	}
}
