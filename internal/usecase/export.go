package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leetcode-export/internal/domain/model"
	"leetcode-export/internal/domain/ports"
)

// Export orchestrates listing slugs, fetching each problem in turn and
// persisting the collected records.
type Export struct {
	lister  ports.ProblemLister
	fetcher ports.ProblemFetcher
	sink    ports.RecordSink
	logger  ports.Logger
	count   int
}

// ExportConfig controls how many problems one run collects.
type ExportConfig struct {
	DesiredCount int
}

// NewExport constructs an Export use case.
func NewExport(
	lister ports.ProblemLister,
	fetcher ports.ProblemFetcher,
	sink ports.RecordSink,
	logger ports.Logger,
	cfg ExportConfig,
) *Export {
	return &Export{
		lister:  lister,
		fetcher: fetcher,
		sink:    sink,
		logger:  logger,
		count:   cfg.DesiredCount,
	}
}

// Run executes one export. Item failures are logged and skipped; only a
// failed write or a cancelled context fails the run, and nothing is
// persisted in that case.
func (e *Export) Run(ctx context.Context) error {
	start := time.Now()
	e.logger.Info(ctx, "starting leetcode export", "target", e.count)

	slugs, err := e.lister.ListSlugs(ctx, e.count)
	if err != nil && !errors.Is(err, context.Canceled) {
		e.logger.Error(ctx, "slug listing failed", "error", err, "collected", len(slugs))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.logger.Info(ctx, "fetched slugs, retrieving details", "count", len(slugs))
	records, err := e.collect(ctx, slugs)
	if err != nil {
		return err
	}

	if err := e.sink.Write(ctx, records); err != nil {
		e.logger.Error(ctx, "failed to save problems", "error", err, "path", e.sink.Location())
		return fmt.Errorf("save problems: %w", err)
	}

	e.logger.Info(ctx, "saved problems",
		"count", len(records),
		"path", e.sink.Location(),
		"duration", time.Since(start))
	return nil
}

func (e *Export) collect(ctx context.Context, slugs []string) ([]model.ProblemRecord, error) {
	records := make([]model.ProblemRecord, 0, len(slugs))
	seen := make(map[string]struct{}, len(slugs))

	for i, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.logger.Info(ctx, fmt.Sprintf("[%d/%d] %s", i+1, len(slugs), slug))

		record, err := e.fetcher.FetchProblem(ctx, slug)
		if err != nil {
			e.logger.Error(ctx, "failed to fetch problem detail", "slug", slug, "error", err)
			continue
		}
		if record == nil {
			continue
		}
		if _, dup := seen[record.ID]; dup {
			e.logger.Warn(ctx, "duplicate problem skipped", "slug", slug)
			continue
		}
		seen[record.ID] = struct{}{}
		records = append(records, *record)
	}

	return records, nil
}
