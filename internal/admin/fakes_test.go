package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

// memStore is an in-memory stand-in for the Postgres repositories.
type memStore struct {
	mu          sync.Mutex
	seq         int
	tools       map[string]*domain.Tool
	workflows   map[string]*domain.Workflow
	workflowTo  map[string][]string
	prompts     map[string]*domain.Prompt
	comparisons map[string]*domain.Comparison
	compareTo   map[string][]string
	mutations   int
}

func newMemStore() *memStore {
	return &memStore{
		tools:       map[string]*domain.Tool{},
		workflows:   map[string]*domain.Workflow{},
		workflowTo:  map[string][]string{},
		prompts:     map[string]*domain.Prompt{},
		comparisons: map[string]*domain.Comparison{},
		compareTo:   map[string][]string{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) seedTool(slug string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID("tool")
	m.tools[id] = &domain.Tool{ID: id, Slug: slug, Name: slug}
	return id
}

type toolRepo struct{ *memStore }

func (r toolRepo) Create(_ context.Context, t *domain.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tools {
		if existing.Slug == t.Slug {
			return fmt.Errorf("create tool: %w", domain.ErrConstraint)
		}
	}
	t.ID = r.nextID("tool")
	t.CreatedAt = time.Now()
	cp := *t
	r.tools[t.ID] = &cp
	r.mutations++
	return nil
}

func (r toolRepo) Update(_ context.Context, id string, t *domain.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[id]; !ok {
		return fmt.Errorf("update tool %s: %w", id, domain.ErrNotFound)
	}
	cp := *t
	cp.ID = id
	r.tools[id] = &cp
	r.mutations++
	return nil
}

func (r toolRepo) Delete(_ context.Context, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.tools[id]
	if !ok {
		return "", fmt.Errorf("delete tool %s: %w", id, domain.ErrNotFound)
	}
	delete(r.tools, id)
	r.mutations++
	return existing.Slug, nil
}

func (r toolRepo) IDsBySlugs(_ context.Context, slugs []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for _, s := range slugs {
		for id, t := range r.tools {
			if t.Slug == s {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

type workflowRepo struct{ *memStore }

func (r workflowRepo) Create(_ context.Context, w *domain.Workflow, toolIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = r.nextID("workflow")
	cp := *w
	r.workflows[w.ID] = &cp
	r.workflowTo[w.ID] = toolIDs
	r.mutations++
	return nil
}

func (r workflowRepo) Update(_ context.Context, id string, w *domain.Workflow, toolIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workflows[id]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	cp.ID = id
	r.workflows[id] = &cp
	r.workflowTo[id] = toolIDs
	r.mutations++
	return nil
}

func (r workflowRepo) Delete(_ context.Context, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.workflows[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	delete(r.workflows, id)
	delete(r.workflowTo, id)
	r.mutations++
	return existing.Slug, nil
}

type promptRepo struct{ *memStore }

func (r promptRepo) Create(_ context.Context, p *domain.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID("prompt")
	cp := *p
	r.prompts[p.ID] = &cp
	r.mutations++
	return nil
}

func (r promptRepo) Update(_ context.Context, id string, p *domain.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prompts[id]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.ID = id
	r.prompts[id] = &cp
	r.mutations++
	return nil
}

func (r promptRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prompts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.prompts, id)
	r.mutations++
	return nil
}

type comparisonRepo struct{ *memStore }

func (r comparisonRepo) Create(_ context.Context, c *domain.Comparison, toolIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID("comparison")
	cp := *c
	r.comparisons[c.ID] = &cp
	r.compareTo[c.ID] = toolIDs
	r.mutations++
	return nil
}

func (r comparisonRepo) Update(_ context.Context, id string, c *domain.Comparison, toolIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comparisons[id]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	cp.ID = id
	r.comparisons[id] = &cp
	r.compareTo[id] = toolIDs
	r.mutations++
	return nil
}

func (r comparisonRepo) Delete(_ context.Context, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.comparisons[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	delete(r.comparisons, id)
	delete(r.compareTo, id)
	r.mutations++
	return existing.Slug, nil
}

func (m *memStore) stores() Stores {
	return Stores{
		Tools:       toolRepo{m},
		Workflows:   workflowRepo{m},
		Prompts:     promptRepo{m},
		Comparisons: comparisonRepo{m},
	}
}

type memAuditor struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	dropped int
}

// Record drops the entry when ctx is done, as a database-backed writer would.
func (a *memAuditor) Record(ctx context.Context, e domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ctx.Err() != nil {
		a.dropped++
		return
	}
	a.entries = append(a.entries, e)
}

type memPages struct {
	mu          sync.Mutex
	invalidated []string
}

func (p *memPages) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (p *memPages) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (p *memPages) Invalidate(ctx context.Context, paths ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	p.invalidated = append(p.invalidated, paths...)
	return nil
}
