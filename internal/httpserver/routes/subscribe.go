package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/handlers"
)

func init() { Register(registerSubscribe) }

// The subscription endpoint applies its own per-IP and per-email limits.
func registerSubscribe(r chi.Router, d deps.Deps) {
	r.Post("/api/subscribe", handlers.Subscribe(d))
}
