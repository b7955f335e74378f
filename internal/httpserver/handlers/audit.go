package handlers

import (
	"net/http"
	"strings"

	"github.com/zainmh-10/CreateAILab/internal/audit"
	"github.com/zainmh-10/CreateAILab/internal/auth"
	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

type auditResponse struct {
	Filters      auditFilters        `json:"filters"`
	Logs         []domain.AuditEntry `json:"logs"`
	Facets       audit.Facets        `json:"facets"`
	TableMissing bool                `json:"tableMissing"`
}

type auditFilters struct {
	UserID string `json:"userId"`
	Entity string `json:"entity"`
	Action string `json:"action"`
	Status string `json:"status"`
	Limit  int    `json:"limit"`
}

// AuditLog serves GET /admin/audit for admins.
func AuditLog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.RequireAdmin(r.Context()); err != nil {
			writeError(w, http.StatusForbidden, "Admin access required.")
			return
		}

		q := r.URL.Query()
		f := audit.Filter{
			UserID: strings.TrimSpace(q.Get("userId")),
			Entity: strings.TrimSpace(q.Get("entity")),
			Action: strings.TrimSpace(q.Get("action")),
			Status: strings.TrimSpace(q.Get("status")),
			Limit:  audit.ParseLimit(q.Get("limit")),
		}

		resp := auditResponse{
			Filters: auditFilters(f),
			Logs:    []domain.AuditEntry{},
			Facets:  audit.Facets{Entities: []string{}, Actions: []string{}, Statuses: []string{}},
		}

		logs, err := d.AuditLog.List(r.Context(), f)
		if err != nil {
			// Any read failure is shown as "no log yet"; the first admin write creates the table.
			d.Logger.Warn("audit log unavailable", logger.Error(err))
			resp.TableMissing = true
			writeJSON(w, http.StatusOK, resp)
			return
		}
		resp.Logs = logs

		if facets, err := d.AuditLog.Facets(r.Context()); err == nil {
			resp.Facets = facets
		} else {
			d.Logger.Debug("audit facets unavailable", logger.Error(err))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
