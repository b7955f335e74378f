package mw

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/cache"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

// PageKey maps an API path onto the public page it backs: "/api/tools/x" -> "/tools/x".
func PageKey(path string) string {
	if key := strings.TrimPrefix(path, "/api"); key != "" {
		return key
	}
	return "/"
}

type bufferWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bufferWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bufferWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// PageCache serves GET responses from pages and stores fresh 200 JSON bodies
// for ttl. Admin writes invalidate by page path.
func PageCache(pages cache.Pages, ttl time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	if pages == nil || ttl <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			key := PageKey(r.URL.Path)

			body, ok, err := pages.Get(r.Context(), key)
			if err != nil {
				log.Debug("PageCache: get failed", logger.String("key", key), logger.Error(err))
			}
			if ok {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				_, _ = w.Write(body)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			bw := &bufferWriter{ResponseWriter: w}
			next.ServeHTTP(bw, r)

			if bw.status != http.StatusOK {
				return
			}
			if err := pages.Set(r.Context(), key, bw.buf.Bytes(), ttl); err != nil {
				log.Debug("PageCache: set failed", logger.String("key", key), logger.Error(err))
			}
		})
	}
}
