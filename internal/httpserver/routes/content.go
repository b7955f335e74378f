package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/handlers"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/mw"
)

func init() { Register(registerContent) }

func registerContent(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Limiter:    d.Limiter,
		Policy:     d.APIRate,
		TrustProxy: d.TrustProxy,
		Now:        d.TimeNow,
	}, d.Logger)

	api := r.With(limit, mw.PageCache(d.Pages, d.PageCacheTTL, d.Logger))
	api.Get("/api/tools", handlers.Tools(d))
	api.Get("/api/tools/{slug}", handlers.Tool(d))
	api.Get("/api/workflows", handlers.Workflows(d))
	api.Get("/api/workflows/{slug}", handlers.Workflow(d))
	api.Get("/api/prompts", handlers.Prompts(d))
	api.Get("/api/compare/{slug}", handlers.Comparison(d))

	// No page key is invalidated for these, so they are never cached.
	r.With(limit).Get("/api/compare", handlers.Comparisons(d))
	r.With(limit).Get("/sitemap.xml", handlers.Sitemap(d))
}
