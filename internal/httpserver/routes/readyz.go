package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/handlers"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/mw"
)

func init() { Register(registerOperational) }

func registerOperational(r chi.Router, d deps.Deps) {
	ops := r.With(mw.Operational(d.AllowedCIDRS, d.AllowedHosts, d.TrustProxy, d.Logger)...)
	ops.Get("/healthz", handlers.Healthz(d))
	ops.Get("/readyz", handlers.Readyz(d))
	ops.Get("/infra", handlers.Infra(d))
	ops.Handle("/metrics", promhttp.Handler())
}
