// ABOUTME: Transcript models for fetched video captions
// ABOUTME: Defines caption entries and the joined transcript text used by every operation
package models

import (
	"strings"
	"time"
)

// TranscriptEntry is one caption cue
type TranscriptEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the full caption track of a video. It is not modified after fetch.
type Transcript struct {
	VideoID   string            `json:"video_id"`
	Entries   []TranscriptEntry `json:"entries"`
	Text      string            `json:"text"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// NewTranscript joins entry text with single spaces, skipping blank cues
func NewTranscript(videoID string, entries []TranscriptEntry) *Transcript {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if text := strings.TrimSpace(e.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return &Transcript{
		VideoID:   videoID,
		Entries:   entries,
		Text:      strings.Join(parts, " "),
		FetchedAt: time.Now(),
	}
}

// Duration returns the end time of the last cue
func (t *Transcript) Duration() time.Duration {
	if len(t.Entries) == 0 {
		return 0
	}
	last := t.Entries[len(t.Entries)-1]
	return time.Duration((last.Start + last.Duration) * float64(time.Second))
}
