// Package timer coalesces bursts of layout triggers into single, cancellable
// jobs.
package timer

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a triggered job runs.
const DefaultDelay = 80 * time.Millisecond

// Job is the debounced work. It must return promptly once ctx is done.
type Job[T any] func(ctx context.Context) (T, error)

// Debouncer runs at most one job at a time for a single layout instance.
// Each Trigger supersedes the previous one: a pending timer is stopped, an
// in-flight job's context is cancelled, and its result is discarded.
type Debouncer[T any] struct {
	delay   time.Duration
	deliver func(T, error)

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer creates a Debouncer that hands the result of the latest job
// to deliver. deliver runs with the debouncer locked and must not call
// Trigger or Stop.
func NewDebouncer[T any](delay time.Duration, deliver func(T, error)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{delay: delay, deliver: deliver}
}

// Trigger schedules job after the debounce delay, superseding any earlier
// trigger.
func (d *Debouncer[T]) Trigger(job Job[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.supersedeLocked()
	gen := d.gen
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() {
		d.run(ctx, gen, job)
	})
}

// Stop cancels any pending or in-flight job. No result is delivered after
// Stop returns.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.supersedeLocked()
}

// Pending reports whether a job is scheduled or running.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}

func (d *Debouncer[T]) supersedeLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Debouncer[T]) run(ctx context.Context, gen uint64, job Job[T]) {
	if ctx.Err() != nil {
		return
	}
	v, err := job(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen || ctx.Err() != nil {
		return // superseded
	}
	d.cancel()
	d.cancel = nil
	d.timer = nil
	d.deliver(v, err)
}
