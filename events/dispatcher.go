// Package events delivers lookup events to the configured audit sinks.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wikibrief/metrics"
	"wikibrief/types"
)

// sinkTimeout bounds a single sink write.
const sinkTimeout = 5 * time.Second

// Sink writes lookup events to one destination.
type Sink interface {
	Name() string
	Write(ctx context.Context, event types.LookupEvent) error
}

// Dispatcher queues lookup events and writes them to every sink from a
// fixed pool of workers, so recording never blocks a request.
type Dispatcher struct {
	queue  chan types.LookupEvent
	sinks  []Sink
	logger *slog.Logger
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts workerCount workers draining a queue of queueSize events.
func NewDispatcher(sinks []Sink, queueSize, workerCount int, logger *slog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workerCount <= 0 {
		workerCount = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		queue:  make(chan types.LookupEvent, queueSize),
		sinks:  sinks,
		logger: logger,
	}

	// Start worker pool
	for i := 0; i < workerCount; i++ {
		d.wg.Add(1)
		go func(workerID int) {
			defer d.wg.Done()
			for event := range d.queue {
				d.deliver(workerID, event)
			}
		}(i)
	}
	return d
}

// Record queues an event. When the queue is full or the dispatcher is
// closed the event is dropped.
func (d *Dispatcher) Record(event types.LookupEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}
	select {
	case d.queue <- event:
	default:
		metrics.RecordEventDropped()
		d.logger.Warn("event queue full, dropping lookup event", "id", event.ID, "query", event.Query)
	}
}

// deliver writes one event to every sink. A failing sink does not stop the others.
func (d *Dispatcher) deliver(workerID int, event types.LookupEvent) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
		err := sink.Write(ctx, event)
		cancel()

		if err != nil {
			metrics.RecordEvent(sink.Name(), "error")
			d.logger.Warn("failed to write lookup event",
				"worker", workerID, "sink", sink.Name(), "id", event.ID, "error", err)
			continue
		}
		metrics.RecordEvent(sink.Name(), "ok")
	}
}

// Close stops accepting events and waits for queued events to be written,
// or for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
