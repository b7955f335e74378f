package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/handlers"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/mw"
)

func init() { Register(registerAdmin, mw.RequireAuthenticated) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Get("/admin/audit", handlers.AuditLog(d))
	r.Post("/admin/{entity}/{verb}", handlers.AdminAction(d))
}
