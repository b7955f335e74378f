package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/handlers"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/mw"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(mw.Operational(d.AllowedCIDRS, d.AllowedHosts, d.TrustProxy, d.Logger)...).Post("/reload", handlers.Reload(d))
}
