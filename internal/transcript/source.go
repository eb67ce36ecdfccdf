// ABOUTME: Transcript sources: where caption entries for a video come from
// ABOUTME: YouTube captions in production, local WebVTT or text files for offline use
package transcript

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/harper/tubewise/internal/config"
	"github.com/harper/tubewise/internal/models"
)

// Source fetches the caption entries of a video.
// A video with no obtainable transcript yields an error matching models.ErrTranscriptNotFound.
type Source interface {
	Fetch(ctx context.Context, videoID string) ([]models.TranscriptEntry, error)
}

// NewSource builds the configured transcript source
func NewSource(cfg *config.Config) (Source, error) {
	switch cfg.TranscriptSource {
	case config.SourceFile:
		return NewFileSource(cfg.TranscriptDir), nil
	case config.SourceYouTube:
		client := &http.Client{Timeout: cfg.Timeout + 5*time.Second}
		return NewYouTubeSource(client, cfg.TranscriptLanguages, cfg.RetryPolicy()), nil
	}
	return nil, fmt.Errorf("unknown transcript source %q", cfg.TranscriptSource)
}

func notFound(videoID string, err error) error {
	return models.NewError(models.KindTranscriptNotFound, "fetch transcript "+videoID, err)
}
