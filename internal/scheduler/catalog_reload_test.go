package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/index"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

type recordingPages struct {
	mu    sync.Mutex
	paths []string
}

func (p *recordingPages) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (p *recordingPages) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
func (p *recordingPages) Invalidate(_ context.Context, paths ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, paths...)
	return nil
}

const testCatalog = `
tools:
  - name: ChatGPT
    slug: chatgpt
    affiliateUrl: https://openai.com/chatgpt/
  - name: Zapier
    slug: zapier
    affiliateUrl: https://zapier.com
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCatalogReloader_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeFile(t, path, testCatalog)

	idx := index.NewMemoryIndex()
	pages := &recordingPages{}
	cr := NewCatalogReloader(path, idx, pages, logger.NewNop(), time.Hour, make(chan struct{}))

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if idx.Count() != 2 {
		t.Fatalf("index has %d tools, want 2", idx.Count())
	}

	want := map[string]bool{"/tools": true, "/tools/chatgpt": true, "/tools/zapier": true}
	for _, p := range pages.paths {
		delete(want, p)
	}
	if len(want) != 0 {
		t.Errorf("paths not invalidated: %v", want)
	}
}

func TestCatalogReloader_BadFileKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeFile(t, path, testCatalog)

	idx := index.NewMemoryIndex()
	cr := NewCatalogReloader(path, idx, nil, logger.NewNop(), time.Hour, make(chan struct{}))
	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	writeFile(t, path, "tools: []")
	if err := cr.Reload(context.Background()); err == nil {
		t.Fatal("Reload() of empty catalog should fail")
	}
	if idx.Count() != 2 {
		t.Errorf("index has %d tools after failed reload, want 2", idx.Count())
	}
}

func TestCatalogReloader_StartFailsOnMissingFile(t *testing.T) {
	cr := NewCatalogReloader(filepath.Join(t.TempDir(), "missing.yaml"), index.NewMemoryIndex(), nil,
		logger.NewNop(), time.Hour, make(chan struct{}))
	if err := cr.Start(context.Background()); err == nil {
		t.Fatal("Start() should fail when the catalog cannot be loaded")
	}
}

func TestCatalogReloader_ManualTrigger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeFile(t, path, testCatalog)

	idx := index.NewMemoryIndex()
	trigger := make(chan struct{}, 1)
	cr := NewCatalogReloader(path, idx, nil, logger.NewNop(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := cr.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer cr.Stop()

	writeFile(t, path, testCatalog+`
  - name: Make
    slug: make
    affiliateUrl: https://make.com
`)
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for idx.Count() != 3 {
		if time.Now().After(deadline) {
			t.Fatalf("manual reload not applied, index has %d tools", idx.Count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
