// Package content serves the public read side. Reads never fail: when the
// database is missing or erroring, tools come from the curated catalog and
// other content degrades to empty.
package content

import (
	"context"
	"errors"

	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

const DefaultFeaturedLimit = 3

type ToolReader interface {
	List(ctx context.Context) ([]domain.Tool, error)
	BySlug(ctx context.Context, slug string) (*domain.Tool, error)
	Featured(ctx context.Context, limit int) ([]domain.Tool, error)
}

type WorkflowReader interface {
	List(ctx context.Context) ([]domain.Workflow, error)
	BySlug(ctx context.Context, slug string) (*domain.Workflow, error)
}

type PromptReader interface {
	List(ctx context.Context) ([]domain.Prompt, error)
}

type ComparisonReader interface {
	List(ctx context.Context) ([]domain.Comparison, error)
	BySlug(ctx context.Context, slug string) (*domain.Comparison, error)
}

// Catalog is the curated fallback tool list.
type Catalog interface {
	Tools() []domain.Tool
	Tool(slug string) (domain.Tool, bool)
}

type Service struct {
	tools       ToolReader
	workflows   WorkflowReader
	prompts     PromptReader
	comparisons ComparisonReader
	catalog     Catalog
	dbEnabled   bool
	log         logger.Logger
}

type Deps struct {
	Tools       ToolReader
	Workflows   WorkflowReader
	Prompts     PromptReader
	Comparisons ComparisonReader
	Catalog     Catalog
	// DatabaseEnabled is false when no DSN is configured; repositories are then never called.
	DatabaseEnabled bool
}

func NewService(d Deps, log logger.Logger) *Service {
	return &Service{
		tools:       d.Tools,
		workflows:   d.Workflows,
		prompts:     d.Prompts,
		comparisons: d.Comparisons,
		catalog:     d.Catalog,
		dbEnabled:   d.DatabaseEnabled,
		log:         log,
	}
}

// Tools returns database tools followed by catalog tools, de-duplicated by
// slug with the database row winning.
func (s *Service) Tools(ctx context.Context) []domain.Tool {
	catalog := s.catalogTools()
	if !s.dbEnabled {
		return catalog
	}
	rows, err := s.tools.List(ctx)
	if err != nil {
		s.readFailed("tools", err)
		return catalog
	}

	merged := make([]domain.Tool, 0, len(rows)+len(catalog))
	seen := make(map[string]struct{}, len(rows)+len(catalog))
	for _, t := range append(rows, catalog...) {
		if _, dup := seen[t.Slug]; dup {
			continue
		}
		seen[t.Slug] = struct{}{}
		merged = append(merged, t)
	}
	return merged
}

// ToolBySlug prefers the database row and falls back to the catalog.
func (s *Service) ToolBySlug(ctx context.Context, slug string) (domain.Tool, bool) {
	if s.dbEnabled {
		t, err := s.tools.BySlug(ctx, slug)
		switch {
		case err == nil:
			return *t, true
		case !errors.Is(err, domain.ErrNotFound):
			s.readFailed("tool", err)
		}
	}
	return s.catalogTool(slug)
}

// FeaturedTools returns up to limit featured tools; limit <= 0 uses DefaultFeaturedLimit.
func (s *Service) FeaturedTools(ctx context.Context, limit int) []domain.Tool {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	if s.dbEnabled {
		rows, err := s.tools.Featured(ctx, limit)
		if err == nil {
			return rows
		}
		s.readFailed("featured tools", err)
	}

	out := []domain.Tool{}
	for _, t := range s.catalogTools() {
		if len(out) == limit {
			break
		}
		if t.Featured {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) Workflows(ctx context.Context) []domain.Workflow {
	if !s.dbEnabled {
		return []domain.Workflow{}
	}
	rows, err := s.workflows.List(ctx)
	if err != nil {
		s.readFailed("workflows", err)
		return []domain.Workflow{}
	}
	return rows
}

func (s *Service) WorkflowBySlug(ctx context.Context, slug string) (domain.Workflow, bool) {
	if !s.dbEnabled {
		return domain.Workflow{}, false
	}
	w, err := s.workflows.BySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.readFailed("workflow", err)
		}
		return domain.Workflow{}, false
	}
	return *w, true
}

// Prompts lists prompts with gated content withheld.
func (s *Service) Prompts(ctx context.Context) []domain.Prompt {
	if !s.dbEnabled {
		return []domain.Prompt{}
	}
	rows, err := s.prompts.List(ctx)
	if err != nil {
		s.readFailed("prompts", err)
		return []domain.Prompt{}
	}
	out := make([]domain.Prompt, 0, len(rows))
	for _, p := range rows {
		out = append(out, p.Redacted())
	}
	return out
}

func (s *Service) Comparisons(ctx context.Context) []domain.Comparison {
	if !s.dbEnabled {
		return []domain.Comparison{}
	}
	rows, err := s.comparisons.List(ctx)
	if err != nil {
		s.readFailed("comparisons", err)
		return []domain.Comparison{}
	}
	return rows
}

func (s *Service) ComparisonBySlug(ctx context.Context, slug string) (domain.Comparison, bool) {
	if !s.dbEnabled {
		return domain.Comparison{}, false
	}
	c, err := s.comparisons.BySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.readFailed("comparison", err)
		}
		return domain.Comparison{}, false
	}
	return *c, true
}

func (s *Service) catalogTools() []domain.Tool {
	if s.catalog == nil {
		return []domain.Tool{}
	}
	return s.catalog.Tools()
}

func (s *Service) catalogTool(slug string) (domain.Tool, bool) {
	if s.catalog == nil {
		return domain.Tool{}, false
	}
	return s.catalog.Tool(slug)
}

func (s *Service) readFailed(what string, err error) {
	s.log.Warn("content read failed, serving fallback", logger.String("content", what), logger.Error(err))
}
