// ABOUTME: Transcript source backed by a directory of caption files
// ABOUTME: Looks for <video_id>.vtt, then <video_id>.txt (one cue per non-empty line)
package transcript

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/tubewise/internal/models"
)

// FileSource reads transcripts from local files
type FileSource struct {
	dir string
}

// NewFileSource creates a source rooted at dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Fetch loads the caption file for videoID
func (s *FileSource) Fetch(ctx context.Context, videoID string) ([]models.TranscriptEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !videoIDRe.MatchString(videoID) {
		return nil, notFound(videoID, errors.New("invalid video id"))
	}

	for _, ext := range []string{".vtt", ".txt"} {
		data, err := os.ReadFile(filepath.Join(s.dir, videoID+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, notFound(videoID, fmt.Errorf("read transcript file: %w", err))
		}

		var entries []models.TranscriptEntry
		if ext == ".vtt" {
			entries, err = ParseVTT(string(data))
			if err != nil {
				return nil, notFound(videoID, err)
			}
		} else {
			entries = parsePlainText(string(data))
		}
		if len(entries) == 0 {
			return nil, notFound(videoID, errors.New("transcript file is empty"))
		}
		return entries, nil
	}

	return nil, notFound(videoID, fmt.Errorf("no transcript file in %s", s.dir))
}

func parsePlainText(content string) []models.TranscriptEntry {
	var entries []models.TranscriptEntry
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		if text := Scrub(line); text != "" {
			entries = append(entries, models.TranscriptEntry{Text: text})
		}
	}
	return entries
}
