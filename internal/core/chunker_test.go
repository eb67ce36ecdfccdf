// ABOUTME: Tests for Chunker size-bounded splitting
// ABOUTME: Verifies clamping, empty input, size bound, coverage, overlap, and determinism

package core

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/harper/tubewise/internal/models"
)

func longTranscript() string {
	sentences := []string{
		"Welcome back to the channel where we talk about distributed systems.",
		"Today we are looking at consensus and why leader election matters.",
		"Raft splits the problem into leader election, log replication, and safety.",
		"A follower becomes a candidate when its election timeout fires.",
		"The candidate asks every peer for a vote and wins with a majority.",
		"Once elected, the leader sends heartbeats to keep followers quiet.",
		"Log entries are committed after a majority has stored them.",
		"If you enjoyed this video please like and subscribe for more.",
	}
	var b strings.Builder
	for i := 0; i < 6; i++ {
		for _, s := range sentences {
			b.WriteString(s)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

func TestNewChunker_Clamping(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		overlap     int
		wantSize    int
		wantOverlap int
	}{
		{"defaults", DefaultChunkSize, DefaultChunkOverlap, 500, 50},
		{"zero size", 0, 50, 500, 50},
		{"negative size", -10, 20, 500, 20},
		{"negative overlap", 300, -5, 300, 0},
		{"overlap equals size", 200, 200, 200, 20},
		{"overlap exceeds size", 100, 150, 100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(tt.size, tt.overlap)
			if c.Size() != tt.wantSize {
				t.Errorf("Size() = %d, want %d", c.Size(), tt.wantSize)
			}
			if c.Overlap() != tt.wantOverlap {
				t.Errorf("Overlap() = %d, want %d", c.Overlap(), tt.wantOverlap)
			}
		})
	}
}

func TestChunker_EmptyText(t *testing.T) {
	c := NewChunker(DefaultChunkSize, DefaultChunkOverlap)

	for _, text := range []string{"", "   ", "\t\n\r"} {
		chunks, err := c.Split(text)
		if err != nil {
			t.Fatalf("Split(%q) error = %v", text, err)
		}
		if len(chunks) != 0 {
			t.Errorf("Split(%q) = %d chunks, want 0", text, len(chunks))
		}
	}
}

func TestChunker_ShortTextSingleChunk(t *testing.T) {
	c := NewChunker(DefaultChunkSize, DefaultChunkOverlap)

	chunks, err := c.Split("The cat sat on the mat.")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Split() = %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "The cat sat on the mat." {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestChunker_SizeBound(t *testing.T) {
	c := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	text := longTranscript()

	chunks, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("Split() = %d chunks, want several for %d chars", len(chunks), utf8.RuneCountInString(text))
	}
	for i, ch := range chunks {
		if n := utf8.RuneCountInString(ch); n > DefaultChunkSize {
			t.Errorf("chunk %d has %d chars, want <= %d", i, n, DefaultChunkSize)
		}
	}
}

func TestChunker_CoversEveryWord(t *testing.T) {
	c := NewChunker(120, 20)
	text := longTranscript()

	chunks, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,")
		if !strings.Contains(joined, word) {
			t.Errorf("word %q missing from chunks", word)
		}
	}
}

// sharedEdge returns the length of the longest suffix of prev that is also a prefix of next
func sharedEdge(prev, next string) int {
	for n := min(len(prev), len(next)); n > 0; n-- {
		if strings.HasPrefix(next, prev[len(prev)-n:]) {
			return n
		}
	}
	return 0
}

func TestChunker_AdjacentChunksOverlap(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
	}{
		{"defaults", DefaultChunkSize, DefaultChunkOverlap},
		{"small", 120, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := NewChunker(tt.size, tt.overlap).Split(longTranscript())
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if len(chunks) < 2 {
				t.Fatalf("Split() = %d chunks, want several", len(chunks))
			}
			for i := 1; i < len(chunks); i++ {
				n := sharedEdge(chunks[i-1], chunks[i])
				if n == 0 {
					t.Errorf("chunk %d shares nothing with chunk %d: %q | %q", i, i-1,
						chunks[i-1][max(0, len(chunks[i-1])-40):], chunks[i][:min(40, len(chunks[i]))])
				}
				if utf8.RuneCountInString(chunks[i-1][len(chunks[i-1])-n:]) > tt.overlap {
					t.Errorf("chunk %d overlaps by %d bytes, want at most %d chars", i, n, tt.overlap)
				}
			}
		})
	}
}

func TestChunker_ChunksAreSubstrings(t *testing.T) {
	text := longTranscript()
	chunks, err := NewChunker(120, 20).Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	for i, ch := range chunks {
		if !strings.Contains(text, ch) {
			t.Errorf("chunk %d is not a substring of the input: %q", i, ch)
		}
	}
}

func TestChunker_HardCutWithoutSeparators(t *testing.T) {
	c := NewChunker(100, 10)
	text := strings.Repeat("x", 450)

	chunks, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	total := 0
	for i, ch := range chunks {
		n := utf8.RuneCountInString(ch)
		if n > 100 {
			t.Errorf("chunk %d has %d chars, want <= 100", i, n)
		}
		total += n
	}
	if total < 450 {
		t.Errorf("chunks cover %d chars, want at least 450", total)
	}
}

func TestChunker_Deterministic(t *testing.T) {
	c := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	text := longTranscript()

	first, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	second, err := NewChunker(DefaultChunkSize, DefaultChunkOverlap).Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunkTranscript_StableIDs(t *testing.T) {
	c := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	tr := models.NewTranscript("vid123", []models.TranscriptEntry{{Text: longTranscript()}})

	chunks, err := c.ChunkTranscript(tr)
	if err != nil {
		t.Fatalf("ChunkTranscript() error = %v", err)
	}
	again, err := c.ChunkTranscript(tr)
	if err != nil {
		t.Fatalf("ChunkTranscript() error = %v", err)
	}

	for i, ch := range chunks {
		if ch.VideoID != "vid123" {
			t.Errorf("chunk %d VideoID = %q", i, ch.VideoID)
		}
		if ch.Index != i {
			t.Errorf("chunk %d Index = %d", i, ch.Index)
		}
		if ch.ChunkID != models.ChunkID("vid123", i) {
			t.Errorf("chunk %d ChunkID = %q", i, ch.ChunkID)
		}
		if again[i].ChunkID != ch.ChunkID || again[i].Content != ch.Content {
			t.Errorf("chunk %d not idempotent", i)
		}
	}
}
