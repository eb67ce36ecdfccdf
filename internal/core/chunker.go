// ABOUTME: Chunker splits transcript text into overlapping, size-bounded pieces for embedding
// ABOUTME: Prefers paragraph, line, then word boundaries before a hard cut; chunks stay substrings of the input
package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/harper/tubewise/internal/models"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the target chunk length in characters
	DefaultChunkSize = 500
	// DefaultChunkOverlap is the number of characters shared by adjacent chunks
	DefaultChunkOverlap = 50
)

// chunkSeparators are tried in order. Splits must be small enough to fit in the
// overlap window or adjacent chunks share nothing, so there is no sentence level.
var chunkSeparators = []string{"\n\n", "\n", " ", ""}

// Chunker handles size-bounded text chunking
type Chunker struct {
	size     int
	overlap  int
	splitter textsplitter.RecursiveCharacter
}

// NewChunker creates a Chunker. Out of range parameters are clamped:
// size <= 0 uses DefaultChunkSize, negative overlap becomes 0,
// and an overlap not smaller than size becomes size/10.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 10
	}

	return &Chunker{
		size:    size,
		overlap: overlap,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(size),
			textsplitter.WithChunkOverlap(overlap),
			textsplitter.WithSeparators(chunkSeparators),
			textsplitter.WithKeepSeparator(true),
			textsplitter.WithLenFunc(utf8.RuneCountInString),
		),
	}
}

// Size returns the effective chunk size
func (c *Chunker) Size() int { return c.size }

// Overlap returns the effective overlap
func (c *Chunker) Overlap() int { return c.overlap }

// Split returns the chunks of text in order. Empty or whitespace-only text yields no chunks.
func (c *Chunker) Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	parts, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}

	chunks := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		chunks = append(chunks, p)
	}
	return chunks, nil
}

// ChunkTranscript splits a transcript into chunks carrying stable IDs
func (c *Chunker) ChunkTranscript(t *models.Transcript) ([]models.Chunk, error) {
	parts, err := c.Split(t.Text)
	if err != nil {
		return nil, err
	}

	chunks := make([]models.Chunk, len(parts))
	for i, p := range parts {
		chunks[i] = models.Chunk{
			ChunkID: models.ChunkID(t.VideoID, i),
			VideoID: t.VideoID,
			Index:   i,
			Content: p,
		}
	}
	return chunks, nil
}
