package index

import (
	"sync"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

// MemoryIndex holds the fallback tool catalog. Readers get copies; the whole
// set is swapped on reload.
type MemoryIndex struct {
	mu         sync.RWMutex
	tools      []domain.Tool
	bySlug     map[string]int
	lastReload time.Time
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{bySlug: make(map[string]int)}
}

// UpdateTools replaces all tools, keeping their order.
func (idx *MemoryIndex) UpdateTools(tools []domain.Tool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.tools = make([]domain.Tool, len(tools))
	copy(idx.tools, tools)
	idx.bySlug = make(map[string]int, len(tools))
	for i, t := range idx.tools {
		idx.bySlug[t.Slug] = i
	}
	idx.lastReload = time.Now()
}

// Tool returns the catalog tool with slug.
func (idx *MemoryIndex) Tool(slug string) (domain.Tool, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	i, ok := idx.bySlug[slug]
	if !ok {
		return domain.Tool{}, false
	}
	return idx.tools[i], true
}

// Tools returns all catalog tools in file order.
func (idx *MemoryIndex) Tools() []domain.Tool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.Tool, len(idx.tools))
	copy(out, idx.tools)
	return out
}

func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.tools)
}

func (idx *MemoryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
