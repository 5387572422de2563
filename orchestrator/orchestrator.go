package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"wikibrief/config"
	"wikibrief/metrics"
	"wikibrief/types"
)

// TitleResolver resolves a free-text query to a canonical title.
type TitleResolver interface {
	ResolveTitle(ctx context.Context, query string) types.Fetched[string]
}

// SummaryFetcher fetches summary metadata for a canonical title.
type SummaryFetcher interface {
	FetchSummary(ctx context.Context, title string) types.Fetched[types.Summary]
}

// ParagraphFetcher fetches up to limit introductory paragraphs for a canonical title.
type ParagraphFetcher interface {
	FetchParagraphs(ctx context.Context, title string, limit int) types.Fetched[[]string]
}

// EventRecorder receives one event per lookup. Record must not block.
type EventRecorder interface {
	Record(event types.LookupEvent)
}

// Config wires a Pipeline. Recorder and Logger are optional.
type Config struct {
	Resolver       TitleResolver
	Summaries      SummaryFetcher
	Paragraphs     ParagraphFetcher
	ParagraphLimit int
	Recorder       EventRecorder
	Logger         *slog.Logger
}

// Pipeline resolves a query and aggregates summary and paragraphs for the
// resolved article. It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	resolver   TitleResolver
	summaries  SummaryFetcher
	paragraphs ParagraphFetcher
	limit      int
	recorder   EventRecorder
	logger     *slog.Logger
}

// NewPipeline creates a pipeline from cfg.
func NewPipeline(cfg Config) *Pipeline {
	p := &Pipeline{
		resolver:   cfg.Resolver,
		summaries:  cfg.Summaries,
		paragraphs: cfg.Paragraphs,
		limit:      cfg.ParagraphLimit,
		recorder:   cfg.Recorder,
		logger:     cfg.Logger,
	}
	if p.limit <= 0 {
		p.limit = config.DefaultParagraphLimit
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// lookupStats collects what the event and the completion log need to know.
type lookupStats struct {
	title              string
	summaryDegraded    bool
	paragraphsDegraded bool
	paragraphCount     int
}

// Search runs one lookup: validate, resolve, fan out, merge. It always
// returns exactly one of a Result or an OutcomeError; panics raised by the
// collaborators are converted to an InternalFailure.
func (p *Pipeline) Search(ctx context.Context, query string) (out types.Outcome) {
	start := time.Now()
	var stats lookupStats
	defer func() { p.finish(query, out, stats, time.Since(start)) }()

	if strings.TrimSpace(query) == "" {
		return types.Failed(types.ReasonMissingQuery, query, "")
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("unexpected failure in lookup pipeline",
				"query", query, "panic", r, "stack", string(debug.Stack()))
			out = types.Failed(types.ReasonInternalFailure, query, fmt.Sprint(r))
		}
	}()

	resolved := p.resolver.ResolveTitle(ctx, query)
	if resolved.Value == "" {
		return types.Failed(types.ReasonNoMatch, query, "")
	}
	title := resolved.Value
	stats.title = title

	var (
		summary    types.Fetched[types.Summary]
		paragraphs types.Fetched[[]string]
	)

	// Both fetches always run to completion; only a panic cancels the sibling.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.guard("summary", func() { summary = p.summaries.FetchSummary(gctx, title) })
	})
	g.Go(func() error {
		return p.guard("paragraphs", func() { paragraphs = p.paragraphs.FetchParagraphs(gctx, title, p.limit) })
	})
	if err := g.Wait(); err != nil {
		return types.Failed(types.ReasonInternalFailure, query, err.Error())
	}

	list := paragraphs.Value
	if list == nil {
		list = []string{}
	}
	if len(list) > p.limit {
		list = list[:p.limit:p.limit]
	}

	stats.summaryDegraded = summary.Degraded
	stats.paragraphsDegraded = paragraphs.Degraded
	stats.paragraphCount = len(list)

	return types.Succeeded(&types.Result{
		Title:      title,
		Summary:    summary.Value,
		Paragraphs: list,
	})
}

// guard runs fn and turns a panic into an error so it survives the goroutine boundary.
func (p *Pipeline) guard(component string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("unexpected failure in fetcher",
				"component", component, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("%s fetch panicked: %v", component, r)
		}
	}()
	fn()
	return nil
}

// finish reports a completed lookup. Reporting failures never reach the caller
// and never change the outcome.
func (p *Pipeline) finish(query string, out types.Outcome, stats lookupStats, elapsed time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("failed to report lookup",
				"query", query, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	outcome := out.Label()
	metrics.RecordLookup(outcome)

	p.logger.Info("lookup completed",
		"query", query,
		"title", stats.title,
		"outcome", outcome,
		"paragraphs", stats.paragraphCount,
		"duration_ms", elapsed.Milliseconds(),
	)

	if p.recorder == nil {
		return
	}
	p.recorder.Record(types.LookupEvent{
		ID:                 uuid.NewString(),
		Query:              query,
		Title:              stats.title,
		Outcome:            outcome,
		SummaryDegraded:    stats.summaryDegraded,
		ParagraphsDegraded: stats.paragraphsDegraded,
		ParagraphCount:     stats.paragraphCount,
		DurationMS:         elapsed.Milliseconds(),
		OccurredAt:         time.Now().UTC(),
	})
}
