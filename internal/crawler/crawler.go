// Package crawler implements the crawl orchestrator: it drives one
// source adapter through its pagination strategy until caught up,
// deduplicating by source URL and resolving images before anything is
// persisted.
package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/newsharvest/internal/assets"
	"github.com/jonesrussell/newsharvest/internal/domain"
	"github.com/jonesrussell/newsharvest/internal/fetch"
	"github.com/jonesrussell/newsharvest/internal/logger"
	"github.com/jonesrussell/newsharvest/internal/sources"
)

// Store is the dedup and persistence contract the orchestrator needs.
type Store interface {
	ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)
	Insert(ctx context.Context, article *domain.Article) error
	ReadCursor(ctx context.Context) (int, error)
	WriteCursor(ctx context.Context, total int) error
}

// ImageStore resolves article images into the shared asset directory.
type ImageStore interface {
	Ensure(ctx context.Context, assetID, sourceURL string) error
}

// Config holds orchestrator configuration.
type Config struct {
	// Retries bounds the outer retry cycle around a failed image store.
	Retries int
	// Wait is the pause between index-offset batches.
	Wait time.Duration
	// LatestPages is the fixed page depth for recent-scan sources.
	LatestPages int
	// ImageURLPrefix is the public prefix recorded in Article.ImagePath.
	ImageURLPrefix string
}

// Crawler runs catch-up passes over source adapters. All work within a
// pass is strictly sequential; parallelism exists only across whole
// sources, in separate processes.
type Crawler struct {
	store  Store
	images ImageStore
	cfg    Config
	logger logger.Interface
}

// New creates a crawler.
func New(store Store, images ImageStore, cfg Config, log logger.Interface) *Crawler {
	return &Crawler{
		store:  store,
		images: images,
		cfg:    cfg,
		logger: log.WithComponent("crawler"),
	}
}

// Run executes one full catch-up pass for src. A returned error is
// terminal for the source: exhausted network retries or an image that
// could not be stored. Per-item extraction and insert failures are
// logged, counted, and skipped.
func (c *Crawler) Run(ctx context.Context, src sources.Source) (*domain.CrawlReport, error) {
	report := &domain.CrawlReport{
		Source: src.Name(),
		RunID:  uuid.NewString(),
	}
	log := c.logger.WithSource(src.Name()).WithRunID(report.RunID)
	log.Info("Starting crawl run", "mode", string(src.Pagination()))

	start := time.Now()
	var err error
	switch src.Pagination() {
	case sources.ModeIndexOffset:
		err = c.runIndexOffset(ctx, src, report, log)
	case sources.ModeRecentPages:
		err = c.runRecentPages(ctx, src, report, log)
	default:
		err = fmt.Errorf("unknown pagination mode: %q", src.Pagination())
	}
	report.Elapsed = time.Since(start)

	if err != nil {
		log.Error("Crawl run aborted", "error", err)
		return report, err
	}

	log.Info("Crawl run complete",
		"pages", report.PagesFetched,
		"inserted", report.Inserted,
		"skipped_existing", report.SkippedExisting,
		"skipped_unqualified", report.SkippedUnqualified,
		"skipped_failed", report.SkippedFailed,
		"elapsed", report.Elapsed)
	return report, nil
}

// runIndexOffset loops batches from the oldest unfetched item until the
// persisted cursor catches up with the source-reported total. The
// cursor is written once per completed batch, never mid-batch.
func (c *Crawler) runIndexOffset(
	ctx context.Context,
	src sources.Source,
	report *domain.CrawlReport,
	log logger.Interface,
) error {
	ingested, err := c.store.ReadCursor(ctx)
	if err != nil {
		return fmt.Errorf("read cursor: %w", err)
	}

	probe, err := src.ListIndex(ctx, 0)
	if err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	report.PagesFetched++
	if probe.Total < 0 {
		return fmt.Errorf("source %s reports no total; index-offset pagination needs one", src.Name())
	}
	total := probe.Total

	for total > ingested {
		win := ComputeWindow(total, ingested, src.PageSize())
		log.Info("Fetching batch",
			"total", total,
			"ingested", ingested,
			"offset", win.Offset,
			"limit", win.Limit)

		page, listErr := src.ListIndex(ctx, win.Offset)
		if listErr != nil {
			return fmt.Errorf("list index at offset %d: %w", win.Offset, listErr)
		}
		report.PagesFetched++

		batchStart := time.Now()
		processed := 0
		for _, item := range page.Items {
			if processed >= win.Limit {
				break
			}
			if itemErr := c.processItem(ctx, src, item, report, log); itemErr != nil {
				return itemErr
			}
			processed++
		}

		if processed == 0 {
			log.Warn("Index page yielded no items; stopping early",
				"offset", win.Offset, "total", total)
			break
		}

		ingested += processed
		if ingested > total {
			ingested = total
		}
		if writeErr := c.store.WriteCursor(ctx, ingested); writeErr != nil {
			return fmt.Errorf("write cursor: %w", writeErr)
		}

		if page.Total >= 0 {
			total = page.Total
		}
		report.Remaining = total - ingested
		if report.Remaining > 0 {
			perBatch := time.Since(batchStart)
			estimate := perBatch * time.Duration(
				(report.Remaining+src.PageSize()-1)/src.PageSize())
			log.Info("Batch complete, backlog remains",
				"remaining", report.Remaining,
				"estimate", estimate)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.cfg.Wait):
			}
		}
	}

	return nil
}

// runRecentPages re-scans a fixed number of newest pages; the exists
// check alone prevents duplicate work.
func (c *Crawler) runRecentPages(
	ctx context.Context,
	src sources.Source,
	report *domain.CrawlReport,
	log logger.Interface,
) error {
	for pageNum := 0; pageNum < c.cfg.LatestPages; pageNum++ {
		page, err := src.ListIndex(ctx, pageNum)
		if err != nil {
			return fmt.Errorf("list index page %d: %w", pageNum+1, err)
		}
		report.PagesFetched++

		for _, item := range page.Items {
			if itemErr := c.processItem(ctx, src, item, report, log); itemErr != nil {
				return itemErr
			}
		}

		log.Info("Page scan complete", "page", pageNum+1, "items", len(page.Items))
	}

	return nil
}

// processItem takes one index entry through qualify, dedup, extraction,
// image resolution, and insert. A nil return means the item was handled
// one way or another; an error aborts the run.
func (c *Crawler) processItem(
	ctx context.Context,
	src sources.Source,
	item sources.ItemRef,
	report *domain.CrawlReport,
	log logger.Interface,
) error {
	if !src.Qualifies(item) {
		report.SkippedUnqualified++
		return nil
	}

	exists, err := c.store.ExistsBySourceURL(ctx, item.SourceURL)
	if err != nil {
		log.Error("Existence check failed, skipping item",
			"source_url", item.SourceURL, "error", err)
		report.SkippedFailed++
		return nil
	}
	if exists {
		report.SkippedExisting++
		return nil
	}

	article, err := src.ExtractDetail(ctx, item)
	if err != nil {
		if fetch.IsTerminal(err) {
			return err
		}
		log.Warn("Extraction failed, skipping item",
			"source_url", item.SourceURL, "error", err)
		report.SkippedFailed++
		return nil
	}

	if article.HasImage() {
		assetID := src.AssetID(item)
		if assetID != "" {
			if imgErr := c.ensureImage(ctx, assetID, article.ImageURL, log); imgErr != nil {
				return imgErr
			}
			article.ImagePath = c.cfg.ImageURLPrefix + "/" + assets.FileName(assetID)
		}
	}

	article.Normalize()
	if insertErr := c.store.Insert(ctx, article); insertErr != nil {
		log.Error("Insert failed, item will be retried next run",
			"source_url", article.SourceURL, "error", insertErr)
		report.SkippedFailed++
		return nil
	}

	report.Inserted++
	return nil
}

// ensureImage wraps the image store in the orchestrator's outer retry
// cycle. Exhausted fetch retries abort immediately; local write
// failures get Retries more attempts before the run is given up — an
// article is never stored with a dangling image reference.
func (c *Crawler) ensureImage(ctx context.Context, assetID, sourceURL string, log logger.Interface) error {
	err := c.images.Ensure(ctx, assetID, sourceURL)
	if err == nil || fetch.IsTerminal(err) {
		return err
	}

	for attempt := 1; attempt <= c.cfg.Retries; attempt++ {
		log.Warn("Retrying image store",
			"asset_id", assetID,
			"attempt", attempt,
			"error", err)
		err = c.images.Ensure(ctx, assetID, sourceURL)
		if err == nil || fetch.IsTerminal(err) {
			return err
		}
	}

	return fmt.Errorf("store image %s after %d attempts: %w", assetID, c.cfg.Retries+1, err)
}
