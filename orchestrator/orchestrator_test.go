package orchestrator

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

type fakeResolver struct {
	title    string
	degraded bool
	panicMsg string
}

func (f *fakeResolver) ResolveTitle(_ context.Context, _ string) types.Fetched[string] {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.degraded {
		return types.Degrade("", errors.New("search unavailable"))
	}
	return types.Success(f.title)
}

type fakeSummaries struct {
	summary  types.Summary
	degraded bool
	panicMsg string
	delay    time.Duration
	started  chan struct{}
	peer     chan struct{}
	overlap  bool
}

func (f *fakeSummaries) FetchSummary(_ context.Context, _ string) types.Fetched[types.Summary] {
	f.overlap = rendezvous(f.started, f.peer)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	time.Sleep(f.delay)
	if f.degraded {
		return types.Degrade(types.Summary{}, errors.New("summary unavailable"))
	}
	return types.Success(f.summary)
}

type fakeParagraphs struct {
	paragraphs []string
	degraded   bool
	delay      time.Duration
	gotLimit   int
	started    chan struct{}
	peer       chan struct{}
	overlap    bool
}

func (f *fakeParagraphs) FetchParagraphs(_ context.Context, _ string, limit int) types.Fetched[[]string] {
	f.gotLimit = limit
	f.overlap = rendezvous(f.started, f.peer)
	time.Sleep(f.delay)
	if f.degraded {
		return types.Degrade([]string{}, errors.New("parse unavailable"))
	}
	return types.Success(f.paragraphs)
}

// rendezvous announces that this fetch has started and waits until the peer
// fetch has started too. It reports false when the peer never started while
// this fetch was still running.
func rendezvous(started, peer chan struct{}) bool {
	if started == nil {
		return false
	}
	close(started)
	select {
	case <-peer:
		return true
	case <-time.After(time.Second):
		return false
	}
}

type recordingRecorder struct {
	mu     sync.Mutex
	events []types.LookupEvent
}

func (r *recordingRecorder) Record(ev types.LookupEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func newPipeline(r TitleResolver, s SummaryFetcher, p ParagraphFetcher, rec EventRecorder) *Pipeline {
	return NewPipeline(Config{
		Resolver:   r,
		Summaries:  s,
		Paragraphs: p,
		Recorder:   rec,
		Logger:     discardLogger(),
	})
}

func assertExactlyOne(t *testing.T, out types.Outcome) {
	t.Helper()
	assert.True(t, (out.Result == nil) != (out.Err == nil), "exactly one of Result and Err must be set: %+v", out)
}

func TestSearchSuccess(t *testing.T) {
	summaries := &fakeSummaries{summary: types.Summary{
		Description: strPtr("Réseau informatique mondial"),
		Extract:     strPtr("Internet est le réseau informatique mondial..."),
		URL:         strPtr("https://fr.wikipedia.org/wiki/Internet"),
	}}
	paragraphs := &fakeParagraphs{paragraphs: []string{"un", "deux", "trois"}}
	rec := &recordingRecorder{}

	out := newPipeline(&fakeResolver{title: "Internet"}, summaries, paragraphs, rec).Search(t.Context(), "internet")

	assertExactlyOne(t, out)
	require.NotNil(t, out.Result)
	assert.Equal(t, "Internet", out.Result.Title)
	assert.Equal(t, "Réseau informatique mondial", *out.Result.Summary.Description)
	assert.Nil(t, out.Result.Summary.Thumbnail)
	assert.Equal(t, []string{"un", "deux", "trois"}, out.Result.Paragraphs)
	assert.Equal(t, 3, paragraphs.gotLimit)

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "internet", ev.Query)
	assert.Equal(t, "Internet", ev.Title)
	assert.Equal(t, "ok", ev.Outcome)
	assert.Equal(t, 3, ev.ParagraphCount)
}

func TestSearchMissingQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		resolver := &fakeResolver{panicMsg: "resolver must not be called"}
		out := newPipeline(resolver, &fakeSummaries{}, &fakeParagraphs{}, nil).Search(t.Context(), q)

		assertExactlyOne(t, out)
		require.NotNil(t, out.Err)
		assert.Equal(t, types.ReasonMissingQuery, out.Err.Reason)
	}
}

func TestSearchNoMatch(t *testing.T) {
	cases := []struct {
		name     string
		resolver *fakeResolver
	}{
		{"empty result", &fakeResolver{}},
		{"resolver degraded", &fakeResolver{degraded: true}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			summaries := &fakeSummaries{panicMsg: "summary must not be called"}
			rec := &recordingRecorder{}
			out := newPipeline(c.resolver, summaries, &fakeParagraphs{}, rec).Search(t.Context(), "termequinapasdecorrespondance")

			assertExactlyOne(t, out)
			require.NotNil(t, out.Err)
			assert.Equal(t, types.ReasonNoMatch, out.Err.Reason)
			assert.Equal(t, "termequinapasdecorrespondance", out.Err.Query)
			require.Len(t, rec.events, 1)
			assert.Equal(t, string(types.ReasonNoMatch), rec.events[0].Outcome)
		})
	}
}

func TestSearchPartialFailure(t *testing.T) {
	t.Run("summary fails, paragraphs succeed", func(t *testing.T) {
		rec := &recordingRecorder{}
		out := newPipeline(
			&fakeResolver{title: "Internet"},
			&fakeSummaries{degraded: true},
			&fakeParagraphs{paragraphs: []string{"Internet est le réseau informatique mondial."}},
			rec,
		).Search(t.Context(), "internet")

		assertExactlyOne(t, out)
		require.NotNil(t, out.Result)
		assert.Equal(t, types.Summary{}, out.Result.Summary)
		assert.Equal(t, []string{"Internet est le réseau informatique mondial."}, out.Result.Paragraphs)
		require.Len(t, rec.events, 1)
		assert.True(t, rec.events[0].SummaryDegraded)
		assert.False(t, rec.events[0].ParagraphsDegraded)
	})

	t.Run("paragraphs fail, summary succeeds", func(t *testing.T) {
		out := newPipeline(
			&fakeResolver{title: "Internet"},
			&fakeSummaries{summary: types.Summary{Extract: strPtr("extrait")}},
			&fakeParagraphs{degraded: true},
			nil,
		).Search(t.Context(), "internet")

		require.NotNil(t, out.Result)
		assert.Equal(t, "extrait", *out.Result.Summary.Extract)
		assert.NotNil(t, out.Result.Paragraphs)
		assert.Empty(t, out.Result.Paragraphs)
	})
}

func TestSearchCapsParagraphs(t *testing.T) {
	paragraphs := &fakeParagraphs{paragraphs: []string{"1", "2", "3", "4", "5"}}
	out := newPipeline(&fakeResolver{title: "Nombres"}, &fakeSummaries{}, paragraphs, nil).Search(t.Context(), "nombres")

	require.NotNil(t, out.Result)
	assert.LessOrEqual(t, len(out.Result.Paragraphs), 3)
	assert.Equal(t, []string{"1", "2", "3"}, out.Result.Paragraphs)
}

func TestSearchFetchesConcurrently(t *testing.T) {
	summaryStarted := make(chan struct{})
	paragraphsStarted := make(chan struct{})
	summaries := &fakeSummaries{started: summaryStarted, peer: paragraphsStarted}
	paragraphs := &fakeParagraphs{
		paragraphs: []string{"p"},
		started:    paragraphsStarted,
		peer:       summaryStarted,
	}

	out := newPipeline(&fakeResolver{title: "Internet"}, summaries, paragraphs, nil).Search(t.Context(), "internet")
	require.NotNil(t, out.Result)

	assert.True(t, summaries.overlap, "summary fetch finished before paragraphs fetch started")
	assert.True(t, paragraphs.overlap, "paragraphs fetch finished before summary fetch started")
}

func TestSearchWaitsForBothFetches(t *testing.T) {
	paragraphs := &fakeParagraphs{paragraphs: []string{"lent"}, delay: 50 * time.Millisecond}
	summaries := &fakeSummaries{summary: types.Summary{Extract: strPtr("rapide")}}

	out := newPipeline(&fakeResolver{title: "Tortue"}, summaries, paragraphs, nil).Search(t.Context(), "tortue")

	require.NotNil(t, out.Result)
	assert.Equal(t, []string{"lent"}, out.Result.Paragraphs)
	assert.Equal(t, "rapide", *out.Result.Summary.Extract)
}

func TestSearchOverlapTiming(t *testing.T) {
	const delay = 100 * time.Millisecond
	summaries := &fakeSummaries{delay: delay}
	paragraphs := &fakeParagraphs{paragraphs: []string{"p"}, delay: delay}

	start := time.Now()
	out := newPipeline(&fakeResolver{title: "Internet"}, summaries, paragraphs, nil).Search(t.Context(), "internet")
	elapsed := time.Since(start)

	require.NotNil(t, out.Result)
	assert.Less(t, elapsed, 2*delay, "fetches ran sequentially")
}

func TestSearchInternalFailure(t *testing.T) {
	cases := []struct {
		name      string
		resolver  *fakeResolver
		summaries *fakeSummaries
	}{
		{"resolver panics", &fakeResolver{panicMsg: "API Error"}, &fakeSummaries{}},
		{"summary fetch panics", &fakeResolver{title: "Internet"}, &fakeSummaries{panicMsg: "API Error"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := &recordingRecorder{}
			var out types.Outcome
			require.NotPanics(t, func() {
				out = newPipeline(c.resolver, c.summaries, &fakeParagraphs{}, rec).Search(t.Context(), "internet")
			})

			assertExactlyOne(t, out)
			require.NotNil(t, out.Err)
			assert.Equal(t, types.ReasonInternalFailure, out.Err.Reason)
			assert.Equal(t, "internet", out.Err.Query)
			assert.Contains(t, out.Err.Detail, "API Error")
			require.Len(t, rec.events, 1)
			assert.Equal(t, string(types.ReasonInternalFailure), rec.events[0].Outcome)
		})
	}
}

type panickingRecorder struct{}

func (panickingRecorder) Record(types.LookupEvent) { panic("queue closed") }

func TestSearchSurvivesRecorderPanic(t *testing.T) {
	p := newPipeline(&fakeResolver{title: "Internet"}, &fakeSummaries{}, &fakeParagraphs{}, panickingRecorder{})

	var out types.Outcome
	require.NotPanics(t, func() { out = p.Search(t.Context(), "internet") })
	assertExactlyOne(t, out)
	require.NotNil(t, out.Result)
	assert.Equal(t, "Internet", out.Result.Title)

	require.NotPanics(t, func() { out = p.Search(t.Context(), "  ") })
	require.NotNil(t, out.Err)
	assert.Equal(t, types.ReasonMissingQuery, out.Err.Reason)
}

func TestNewPipelineDefaultLimit(t *testing.T) {
	p := NewPipeline(Config{ParagraphLimit: -1})
	assert.Equal(t, 3, p.limit)
}
