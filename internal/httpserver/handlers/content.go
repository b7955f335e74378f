package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zainmh-10/CreateAILab/internal/content"
	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
)

type toolsResponse struct {
	Tools    []domain.Tool `json:"tools"`
	Featured []domain.Tool `json:"featured"`
}

func Tools(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, toolsResponse{
			Tools:    d.Content.Tools(r.Context()),
			Featured: d.Content.FeaturedTools(r.Context(), content.DefaultFeaturedLimit),
		})
	}
}

func Tool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tool, ok := d.Content.ToolBySlug(r.Context(), chi.URLParam(r, "slug"))
		if !ok {
			writeError(w, http.StatusNotFound, "Tool not found.")
			return
		}
		writeJSON(w, http.StatusOK, tool)
	}
}

func Workflows(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]domain.Workflow{"workflows": d.Content.Workflows(r.Context())})
	}
}

func Workflow(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf, ok := d.Content.WorkflowBySlug(r.Context(), chi.URLParam(r, "slug"))
		if !ok {
			writeError(w, http.StatusNotFound, "Workflow not found.")
			return
		}
		writeJSON(w, http.StatusOK, wf)
	}
}

// Prompts lists prompts with gated content withheld.
func Prompts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]domain.Prompt{"prompts": d.Content.Prompts(r.Context())})
	}
}

func Comparisons(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]domain.Comparison{"comparisons": d.Content.Comparisons(r.Context())})
	}
}

func Comparison(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := d.Content.ComparisonBySlug(r.Context(), chi.URLParam(r, "slug"))
		if !ok {
			writeError(w, http.StatusNotFound, "Comparison not found.")
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}
