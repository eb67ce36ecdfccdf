// ABOUTME: HTTP router for the transcript service
// ABOUTME: JSON endpoints per operation plus health, metrics and session eviction
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/harper/tubewise/internal/service"
	"github.com/rs/zerolog/log"
)

// NewRouter returns the service's HTTP handler with CORS and request logging applied
func NewRouter(svc *service.Service) http.Handler {
	r := mux.NewRouter()
	h := NewHandler(svc)

	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	r.HandleFunc("/metrics", h.Metrics).Methods(http.MethodGet)

	r.HandleFunc("/transcript", h.Transcript).Methods(http.MethodPost)
	r.HandleFunc("/blog", h.Blog).Methods(http.MethodPost)
	r.HandleFunc("/question", h.Question).Methods(http.MethodPost)
	r.HandleFunc("/sentiment", h.Sentiment).Methods(http.MethodPost)
	r.HandleFunc("/word-cloud", h.WordCloud).Methods(http.MethodPost)

	r.HandleFunc("/sessions/{video_id}", h.Evict).Methods(http.MethodDelete)

	return cors(requestLogger(r))
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// cors allows every origin. Preflight requests are answered before routing.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("Access-Control-Allow-Origin", "*")
		hdr.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		hdr.Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("HTTP request")
	})
}
