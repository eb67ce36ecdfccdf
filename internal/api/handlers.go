// ABOUTME: HTTP handlers translating JSON requests into service calls
// ABOUTME: Maps invalid input to 400, missing transcripts to 404 and other failures to 500
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/harper/tubewise/internal/core"
	"github.com/harper/tubewise/internal/models"
	"github.com/harper/tubewise/internal/service"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

type videoRequest struct {
	VideoID string `json:"video_id"`
}

type blogRequest struct {
	VideoID string `json:"video_id"`
	Tone    string `json:"tone"`
	Length  string `json:"length"`
	Format  string `json:"format"`
}

type questionRequest struct {
	VideoID  string `json:"video_id"`
	Question string `json:"question"`
}

// Handler serves the transcript operations
type Handler struct {
	svc *service.Service
}

// NewHandler creates a Handler
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Transcript handles POST /transcript
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if !decode(w, r, &req) || !requireVideo(w, req.VideoID) {
		return
	}
	text, err := h.svc.Transcript(r.Context(), req.VideoID)
	if err != nil {
		writeError(w, "fetching transcript", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"transcript": text})
}

// Blog handles POST /blog
func (h *Handler) Blog(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if !decode(w, r, &req) || !requireVideo(w, req.VideoID) {
		return
	}
	post, err := h.svc.Blog(r.Context(), req.VideoID, service.BlogRequest{
		Tone:   models.Tone(req.Tone),
		Length: models.Length(req.Length),
		Format: core.BlogFormat(req.Format),
	})
	if err != nil {
		writeError(w, "generating blog post", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"blog_post": post})
}

// Question handles POST /question
func (h *Handler) Question(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if !decode(w, r, &req) || !requireVideo(w, req.VideoID) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeDetail(w, http.StatusBadRequest, "question is required")
		return
	}
	answer, err := h.svc.Ask(r.Context(), req.VideoID, req.Question)
	if err != nil {
		writeError(w, "processing question", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// Sentiment handles POST /sentiment
func (h *Handler) Sentiment(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if !decode(w, r, &req) || !requireVideo(w, req.VideoID) {
		return
	}
	result, err := h.svc.Sentiment(r.Context(), req.VideoID)
	if err != nil {
		writeError(w, "analyzing sentiment", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sentiment": result.Format()})
}

// WordCloud handles POST /word-cloud
func (h *Handler) WordCloud(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if !decode(w, r, &req) || !requireVideo(w, req.VideoID) {
		return
	}
	img, err := h.svc.WordCloud(r.Context(), req.VideoID)
	if err != nil {
		writeError(w, "generating word cloud", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"word_cloud": img})
}

// Evict handles DELETE /sessions/{video_id}
func (h *Handler) Evict(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["video_id"]
	ok, err := h.svc.Evict(videoID)
	if err != nil {
		writeError(w, "evicting session", err)
		return
	}
	if !ok {
		writeDetail(w, http.StatusNotFound, "no session for "+videoID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Metrics handles GET /metrics
func (h *Handler) Metrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.svc.Stats().Format()))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func requireVideo(w http.ResponseWriter, videoID string) bool {
	if strings.TrimSpace(videoID) == "" {
		writeDetail(w, http.StatusBadRequest, "video_id is required")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, action string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrTranscriptNotFound):
		status = http.StatusNotFound
	}
	writeDetail(w, status, fmt.Sprintf("Error %s: %v", action, err))
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
