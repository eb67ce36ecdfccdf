// ABOUTME: Chunk represents a bounded slice of a transcript used for retrieval
// ABOUTME: Chunk IDs are derived from the video ID and position so re-chunking is idempotent
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Chunk is one contiguous piece of transcript text
type Chunk struct {
	ChunkID string `json:"chunk_id"`
	VideoID string `json:"video_id"`
	Index   int    `json:"index"`
	Content string `json:"content"`
}

// ChunkID builds the stable identifier for the chunk at index within a video
func ChunkID(videoID string, index int) string {
	return fmt.Sprintf("%s#%04d", videoID, index)
}

// ParseChunkID splits a chunk identifier back into video ID and index
func ParseChunkID(id string) (string, int, error) {
	pos := strings.LastIndex(id, "#")
	if pos <= 0 || pos == len(id)-1 {
		return "", 0, fmt.Errorf("malformed chunk id %q", id)
	}
	index, err := strconv.Atoi(id[pos+1:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed chunk id %q: %w", id, err)
	}
	return id[:pos], index, nil
}

// SearchResult is a chunk returned by a similarity query
type SearchResult struct {
	Chunk      Chunk   `json:"chunk"`
	Similarity float32 `json:"similarity"`
}
