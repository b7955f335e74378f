package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
)

const probeTimeout = 2 * time.Second

type readyzResponse struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// Readyz pings the configured backends. Unconfigured backends are reported
// as "disabled" and do not fail readiness.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		resp := readyzResponse{Ready: true, Checks: map[string]string{}}
		probe := func(name string, p deps.Pinger) {
			if p == nil {
				resp.Checks[name] = "disabled"
				return
			}
			if err := p.Ping(ctx); err != nil {
				resp.Ready = false
				resp.Checks[name] = err.Error()
				return
			}
			resp.Checks[name] = "ok"
		}

		probe("database", d.Database)
		if d.RedisClient != nil {
			probe("redis", redisPinger{d})
		} else {
			probe("redis", nil)
		}

		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

type redisPinger struct{ d deps.Deps }

func (p redisPinger) Ping(ctx context.Context) error {
	return p.d.RedisClient.Ping(ctx).Err()
}
