package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikibrief/types"
)

type memorySink struct {
	name string
	err  error

	mu     sync.Mutex
	events []types.LookupEvent
}

func (s *memorySink) Name() string { return s.name }

func (s *memorySink) Write(_ context.Context, ev types.LookupEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *memorySink) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, ev := range s.events {
		out = append(out, ev.ID)
	}
	return out
}

// blockingSink holds every write until release is closed.
type blockingSink struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingSink) Name() string { return "blocking" }

func (s *blockingSink) Write(ctx context.Context, _ types.LookupEvent) error {
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
	case <-ctx.Done():
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherDeliversToEverySink(t *testing.T) {
	first := &memorySink{name: "first"}
	second := &memorySink{name: "second"}
	d := NewDispatcher([]Sink{first, second}, 8, 2, discardLogger())

	d.Record(types.LookupEvent{ID: "a"})
	d.Record(types.LookupEvent{ID: "b"})
	require.NoError(t, d.Close(t.Context()))

	assert.ElementsMatch(t, []string{"a", "b"}, first.ids())
	assert.ElementsMatch(t, []string{"a", "b"}, second.ids())
}

func TestDispatcherContinuesAfterSinkError(t *testing.T) {
	failing := &memorySink{name: "failing", err: errors.New("unavailable")}
	healthy := &memorySink{name: "healthy"}
	d := NewDispatcher([]Sink{failing, healthy}, 4, 1, discardLogger())

	d.Record(types.LookupEvent{ID: "x"})
	require.NoError(t, d.Close(t.Context()))

	assert.Equal(t, []string{"x"}, failing.ids())
	assert.Equal(t, []string{"x"}, healthy.ids())
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	blocker := &blockingSink{started: make(chan struct{}), release: make(chan struct{})}
	d := NewDispatcher([]Sink{blocker}, 1, 1, discardLogger())

	d.Record(types.LookupEvent{ID: "in-flight"})
	select {
	case <-blocker.started:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up the first event")
	}

	done := make(chan struct{})
	go func() {
		d.Record(types.LookupEvent{ID: "queued"})
		d.Record(types.LookupEvent{ID: "dropped"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	close(blocker.release)
	require.NoError(t, d.Close(t.Context()))
}

func TestDispatcherIgnoresRecordAfterClose(t *testing.T) {
	sink := &memorySink{name: "mem"}
	d := NewDispatcher([]Sink{sink}, 2, 1, discardLogger())
	require.NoError(t, d.Close(t.Context()))

	assert.NotPanics(t, func() { d.Record(types.LookupEvent{ID: "late"}) })
	assert.Empty(t, sink.ids())
	assert.NoError(t, d.Close(t.Context()))
}

func TestDispatcherCloseHonorsContext(t *testing.T) {
	blocker := &blockingSink{started: make(chan struct{}), release: make(chan struct{})}
	d := NewDispatcher([]Sink{blocker}, 1, 1, discardLogger())
	d.Record(types.LookupEvent{ID: "slow"})
	<-blocker.started

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)

	close(blocker.release)
}
