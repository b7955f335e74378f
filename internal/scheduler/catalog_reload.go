package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/cache"
	"github.com/zainmh-10/CreateAILab/internal/index"
	"github.com/zainmh-10/CreateAILab/internal/logger"
	"github.com/zainmh-10/CreateAILab/internal/metrics"
	"github.com/zainmh-10/CreateAILab/internal/sources/catalog"
)

// CatalogReloader periodically reloads the fallback tool catalog into the index.
type CatalogReloader struct {
	loader        *catalog.Loader
	index         *index.MemoryIndex
	pages         cache.Pages
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewCatalogReloader(
	catalogFile string,
	idx *index.MemoryIndex,
	pages cache.Pages,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	if pages == nil {
		pages = cache.Noop{}
	}
	return &CatalogReloader{
		loader:        catalog.NewLoader(catalogFile),
		index:         idx,
		pages:         pages,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the catalog once, then keeps reloading it on the interval or
// when a manual trigger arrives.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial catalog load failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog", logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog", logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload parses the catalog file and swaps the index. On failure the previous
// catalog stays in place.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	f, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	tools, err := catalog.Map(f)
	if err != nil {
		return fmt.Errorf("failed to map catalog: %w", err)
	}

	cr.index.UpdateTools(tools)
	metrics.SetCatalogTools(len(tools))

	paths := make([]string, 0, len(tools)+1)
	paths = append(paths, "/tools")
	for _, t := range tools {
		paths = append(paths, "/tools/"+t.Slug)
	}
	if err := cr.pages.Invalidate(ctx, paths...); err != nil {
		cr.logger.Warn("failed to invalidate tool pages after catalog reload", logger.Error(err))
	}

	cr.logger.Info("catalog loaded", logger.Int("tools", len(tools)))
	return nil
}
