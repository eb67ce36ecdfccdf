// ABOUTME: Tests for ContextHydrator prompt assembly
// ABOUTME: Covers rank ordering, the rune budget and prompt sections
package core

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/harper/tubewise/internal/models"
)

func result(index int, content string, sim float32) models.SearchResult {
	return models.SearchResult{
		Chunk:      models.Chunk{ChunkID: models.ChunkID("vid", index), VideoID: "vid", Index: index, Content: content},
		Similarity: sim,
	}
}

func TestContextHydrator_Hydrate(t *testing.T) {
	ch := NewContextHydrator(0)
	results := []models.SearchResult{
		result(2, "Goroutines are cheap.", 0.9),
		result(0, "Channels connect goroutines.", 0.7),
	}

	system, user := ch.Hydrate("  What are goroutines? ", results)

	if !strings.Contains(system, "only the transcript") {
		t.Errorf("system prompt should restrict answers to context, got %q", system)
	}
	if !strings.Contains(system, "don't know") {
		t.Errorf("system prompt should allow not knowing, got %q", system)
	}

	want := "CONTEXT:\nGoroutines are cheap.\n\nChannels connect goroutines.\n\nQUESTION:\nWhat are goroutines?\n\nANSWER:"
	if user != want {
		t.Errorf("user prompt mismatch\n got: %q\nwant: %q", user, want)
	}
}

func TestContextHydrator_Budget(t *testing.T) {
	tests := []struct {
		name    string
		budget  int
		results []models.SearchResult
		want    string
	}{
		{
			name:    "all fit",
			budget:  100,
			results: []models.SearchResult{result(0, "aaaa", 1), result(1, "bbbb", 0.5)},
			want:    "aaaa\n\nbbbb",
		},
		{
			name:    "second dropped",
			budget:  8,
			results: []models.SearchResult{result(0, "aaaa", 1), result(1, "bbbb", 0.5)},
			want:    "aaaa",
		},
		{
			name:    "first truncated",
			budget:  3,
			results: []models.SearchResult{result(0, "abcdef", 1)},
			want:    "abc",
		},
		{
			name:    "budget counts runes not bytes",
			budget:  12,
			results: []models.SearchResult{result(0, "héllo", 1), result(1, "wörld", 0.5)},
			want:    "héllo\n\nwörld",
		},
		{
			name:    "first truncated on a rune boundary",
			budget:  3,
			results: []models.SearchResult{result(0, "ééééé", 1)},
			want:    "ééé",
		},
		{
			name:    "blank chunks skipped",
			budget:  100,
			results: []models.SearchResult{result(0, "   ", 1), result(1, "kept", 0.5)},
			want:    "kept",
		},
		{
			name:    "no results",
			budget:  100,
			results: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewContextHydrator(tt.budget).Context(tt.results)
			if got != tt.want {
				t.Errorf("Context() = %q, want %q", got, tt.want)
			}
			if n := utf8.RuneCountInString(got); n > tt.budget {
				t.Errorf("Context() has %d runes, exceeds budget %d", n, tt.budget)
			}
		})
	}
}
