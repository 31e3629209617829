package client

import (
	"context"
	"sync"
	"time"
)

// Poller runs probe immediately and then every interval on one goroutine,
// passing each result to apply. Once Stop returns, apply is never called
// again, even for a probe that was already in flight. apply runs under the
// poller's lock and must not call Stop.
type Poller[T any] struct {
	interval time.Duration
	probe    func(context.Context) T
	apply    func(T)

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewPoller[T any](interval time.Duration, probe func(context.Context) T, apply func(T)) *Poller[T] {
	return &Poller[T]{
		interval: interval,
		probe:    probe,
		apply:    apply,
		done:     make(chan struct{}),
	}
}

// Start begins polling. It is a no-op on a started or stopped poller.
func (poller *Poller[T]) Start(parent context.Context) {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	if poller.started || poller.stopped {
		return
	}
	poller.started = true

	ctx, cancel := context.WithCancel(parent)
	poller.cancel = cancel
	go poller.run(ctx)
}

// Stop cancels the in-flight probe and the schedule. It does not wait for
// the goroutine to exit; use Done for that.
func (poller *Poller[T]) Stop() {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	if poller.stopped {
		return
	}
	poller.stopped = true
	if poller.cancel != nil {
		poller.cancel()
	} else {
		close(poller.done)
	}
}

// Done is closed once the polling goroutine has exited.
func (poller *Poller[T]) Done() <-chan struct{} {
	return poller.done
}

func (poller *Poller[T]) run(ctx context.Context) {
	defer close(poller.done)

	ticker := time.NewTicker(poller.interval)
	defer ticker.Stop()

	poller.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poller.tick(ctx)
		}
	}
}

func (poller *Poller[T]) tick(ctx context.Context) {
	result := poller.probe(ctx)

	poller.mu.Lock()
	defer poller.mu.Unlock()
	if poller.stopped || ctx.Err() != nil {
		return
	}
	poller.apply(result)
}
