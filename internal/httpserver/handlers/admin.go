package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

const maxFormBytes = 1 << 20

// AdminAction runs POST /admin/{entity}/{verb} and answers 303 to the admin
// page with the outcome in the query string.
func AdminAction(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			d.Logger.Debug("admin form rejected", logger.Error(err))
			writeError(w, http.StatusBadRequest, "Invalid form.")
			return
		}

		res, ok := d.Admin.Run(r.Context(), chi.URLParam(r, "entity"), chi.URLParam(r, "verb"), r.PostForm)
		if !ok {
			writeError(w, http.StatusNotFound, "Unknown admin action.")
			return
		}
		http.Redirect(w, r, res.Location(), http.StatusSeeOther)
	}
}
