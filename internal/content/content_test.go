package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/index"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

var errDown = errors.New("connection refused")

type fakeTools struct {
	rows []domain.Tool
	err  error
}

func (f *fakeTools) List(context.Context) ([]domain.Tool, error) { return f.rows, f.err }

func (f *fakeTools) BySlug(_ context.Context, slug string) (*domain.Tool, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.rows {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTools) Featured(_ context.Context, limit int) ([]domain.Tool, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Tool{}
	for _, t := range f.rows {
		if t.Featured && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeWorkflows struct{ err error }

func (f *fakeWorkflows) List(context.Context) ([]domain.Workflow, error) {
	return []domain.Workflow{{Slug: "daily-content-engine"}}, f.err
}
func (f *fakeWorkflows) BySlug(context.Context, string) (*domain.Workflow, error) {
	return nil, f.err
}

type fakePrompts struct{}

func (fakePrompts) List(context.Context) ([]domain.Prompt, error) {
	return []domain.Prompt{
		{Title: "open", Content: "visible"},
		{Title: "gated", Content: "secret", Gated: true},
	}, nil
}

type fakeComparisons struct{ err error }

func (f *fakeComparisons) List(context.Context) ([]domain.Comparison, error) { return nil, f.err }
func (f *fakeComparisons) BySlug(context.Context, string) (*domain.Comparison, error) {
	return nil, f.err
}

func catalogIndex() *index.MemoryIndex {
	idx := index.NewMemoryIndex()
	idx.UpdateTools([]domain.Tool{
		{Slug: "chatgpt", Name: "ChatGPT (catalog)", Featured: true},
		{Slug: "zapier", Name: "Zapier", Featured: true},
		{Slug: "make", Name: "Make"},
	})
	return idx
}

func newService(tools *fakeTools, dbEnabled bool) *Service {
	return NewService(Deps{
		Tools:           tools,
		Workflows:       &fakeWorkflows{err: tools.err},
		Prompts:         fakePrompts{},
		Comparisons:     &fakeComparisons{err: tools.err},
		Catalog:         catalogIndex(),
		DatabaseEnabled: dbEnabled,
	}, logger.NewNop())
}

func TestToolsMergesDatabaseFirst(t *testing.T) {
	svc := newService(&fakeTools{rows: []domain.Tool{
		{Slug: "chatgpt", Name: "ChatGPT (db)"},
		{Slug: "zoom-ai", Name: "Zoom AI"},
	}}, true)

	tools := svc.Tools(context.Background())
	require.Len(t, tools, 4)
	assert.Equal(t, "ChatGPT (db)", tools[0].Name)
	assert.Equal(t, "zoom-ai", tools[1].Slug)
	assert.Equal(t, "zapier", tools[2].Slug)
	assert.Equal(t, "make", tools[3].Slug)
}

func TestToolsFallsBackToCatalog(t *testing.T) {
	for name, svc := range map[string]*Service{
		"no database":   newService(&fakeTools{}, false),
		"database down": newService(&fakeTools{err: errDown}, true),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			assert.Len(t, svc.Tools(ctx), 3)

			tool, ok := svc.ToolBySlug(ctx, "chatgpt")
			assert.True(t, ok)
			assert.Equal(t, "ChatGPT (catalog)", tool.Name)

			assert.Len(t, svc.FeaturedTools(ctx, 0), 2)
			assert.Len(t, svc.FeaturedTools(ctx, 1), 1)

			assert.Empty(t, svc.Workflows(ctx))
			_, ok = svc.WorkflowBySlug(ctx, "anything")
			assert.False(t, ok)
			_, ok = svc.ComparisonBySlug(ctx, "a-vs-b")
			assert.False(t, ok)
			assert.NotNil(t, svc.Comparisons(ctx))
		})
	}
}

func TestToolBySlugPrefersDatabase(t *testing.T) {
	svc := newService(&fakeTools{rows: []domain.Tool{{Slug: "chatgpt", Name: "ChatGPT (db)"}}}, true)

	tool, ok := svc.ToolBySlug(context.Background(), "chatgpt")
	require.True(t, ok)
	assert.Equal(t, "ChatGPT (db)", tool.Name)

	tool, ok = svc.ToolBySlug(context.Background(), "zapier")
	require.True(t, ok, "missing db row falls back to catalog")
	assert.Equal(t, "Zapier", tool.Name)

	_, ok = svc.ToolBySlug(context.Background(), "nope")
	assert.False(t, ok)
}

func TestPromptsRedactGatedContent(t *testing.T) {
	svc := newService(&fakeTools{}, true)
	prompts := svc.Prompts(context.Background())
	require.Len(t, prompts, 2)
	assert.Equal(t, "visible", prompts[0].Content)
	assert.True(t, prompts[1].Gated)
	assert.Empty(t, prompts[1].Content)
}

func TestNilCatalog(t *testing.T) {
	svc := NewService(Deps{}, logger.NewNop())
	assert.Empty(t, svc.Tools(context.Background()))
	_, ok := svc.ToolBySlug(context.Background(), "x")
	assert.False(t, ok)
}
