package dispatch

import (
	"context"
	"sync"
)

// SequentialExecutor ensures calls on the shared trends client never overlap.
// Requests run immediately once the previous one has returned; there is no
// pacing.
type SequentialExecutor struct {
	mu sync.Mutex
}

// NewSequentialExecutor creates a new sequential executor
func NewSequentialExecutor() *SequentialExecutor {
	return &SequentialExecutor{}
}

// Execute runs fn once the executor is free
func (se *SequentialExecutor) Execute(ctx context.Context, fn func() error) error {
	se.mu.Lock()
	defer se.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return fn()
}
