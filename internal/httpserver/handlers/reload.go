package handlers

import (
	"net/http"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

// Reload asks the catalog reloader for an immediate pass.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeError(w, http.StatusNotFound, "Catalog reload disabled.")
			return
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual catalog reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "reload triggered"})
		default:
			d.Logger.Warn("catalog reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"status": "reload already in progress"})
		}
	}
}
