package handlers

import (
	"context"
	"net/http"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	ToolsLoaded *int   `json:"tools_loaded,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	ServingMode string                     `json:"serving_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		components := map[string]componentStatus{
			"catalog":  checkCatalog(d),
			"database": checkDatabase(ctx, d),
			"redis":    checkRedis(ctx, d),
			"audit":    checkAudit(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ServingMode: servingMode(components),
			Components:  components,
		})
	}
}

// servingMode summarizes which backends can answer reads.
func servingMode(components map[string]componentStatus) string {
	switch {
	case components["database"].OK && components["redis"].OK:
		return "full"
	case components["database"].OK:
		return "degraded"
	case components["catalog"].OK:
		return "fallback"
	default:
		return "critical"
	}
}

func checkCatalog(d deps.Deps) componentStatus {
	if d.MemoryIndex == nil {
		return componentStatus{OK: false, Error: "catalog disabled"}
	}
	count := d.MemoryIndex.Count()
	last := "never"
	if t := d.MemoryIndex.LastReload(); !t.IsZero() {
		last = t.Format("2006-01-02 15:04:05")
	}
	return componentStatus{OK: count > 0, ToolsLoaded: &count, LastReload: last}
}

func checkDatabase(ctx context.Context, d deps.Deps) componentStatus {
	if d.Database == nil {
		return componentStatus{OK: false, Mode: "disabled", Impact: "admin-writes-disabled"}
	}
	if err := d.Database.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: "unreachable", Impact: "serving-catalog-fallback", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "optimal"}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{OK: false, Mode: "disabled", Impact: "page-cache-disabled"}
	}
	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Mode: "degraded", Impact: "page-cache-and-rate-limit-degraded", Error: "timeout"}
	}
	return componentStatus{OK: true, Mode: "optimal"}
}

// checkAudit does not affect the serving mode.
func checkAudit(d deps.Deps) componentStatus {
	if d.AuditLog == nil || !d.AuditLog.Enabled() {
		return componentStatus{OK: false, Mode: "disabled", Impact: "admin-actions-unaudited"}
	}
	return componentStatus{OK: true, Mode: "recording"}
}
