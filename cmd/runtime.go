package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wikibrief/config"
	"wikibrief/events"
	"wikibrief/extractor"
	"wikibrief/orchestrator"
	"wikibrief/wikipedia"
)

// lookupRuntime holds the pipeline and the event plumbing behind it.
type lookupRuntime struct {
	pipeline   *orchestrator.Pipeline
	dispatcher *events.Dispatcher
	closeSinks func() error
}

// newLookupRuntime wires extractor, wiki client, event sinks and pipeline from cfg.
func newLookupRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*lookupRuntime, error) {
	ext, err := extractor.New(cfg.Extractor, "https://"+cfg.WikiLang+".wikipedia.org/wiki/")
	if err != nil {
		return nil, fmt.Errorf("%w: EXTRACTOR: %v", config.ErrInvalidValue, err)
	}

	client := wikipedia.NewClient(wikipedia.Options{
		ActionAPIURL: cfg.ActionAPIURL,
		RestAPIURL:   cfg.RestAPIURL,
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.UpstreamTimeout,
		Extractor:    ext,
		Logger:       logger,
	})

	sinks, closeSinks, err := events.BuildSinks(ctx, cfg.Events, logger)
	if err != nil {
		return nil, err
	}
	dispatcher := events.NewDispatcher(sinks, cfg.Events.QueueSize, cfg.Events.Workers, logger)

	pipeline := orchestrator.NewPipeline(orchestrator.Config{
		Resolver:       client,
		Summaries:      client,
		Paragraphs:     client,
		ParagraphLimit: cfg.ParagraphLimit,
		Recorder:       dispatcher,
		Logger:         logger,
	})

	return &lookupRuntime{pipeline: pipeline, dispatcher: dispatcher, closeSinks: closeSinks}, nil
}

// Close flushes pending events and releases sink clients.
func (r *lookupRuntime) Close(ctx context.Context) error {
	return errors.Join(r.dispatcher.Close(ctx), r.closeSinks())
}
