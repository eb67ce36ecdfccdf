// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, formatTimestamp, containsString and joinArgs
package commands

import (
	"bytes"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string unchanged",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length unchanged",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "long string truncated",
			input:  "hello world",
			maxLen: 8,
			want:   "hello...",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 2,
			want:   "he",
		},
		{
			name:   "unicode kept whole at small maxLen",
			input:  "你好世界！",
			maxLen: 3,
			want:   "你好世",
		},
		{
			name:   "unicode truncated with ellipsis",
			input:  "你好世界你好世界",
			maxLen: 5,
			want:   "你好...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{7.4, "00:07"},
		{65.6, "01:06"},
		{3599, "59:59"},
		{3725, "1:02:05"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatTimestamp(tt.seconds); got != tt.want {
				t.Errorf("formatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestContainsString(t *testing.T) {
	if !containsString(outputFormats, "json") {
		t.Error("json should be a known format")
	}
	if containsString(outputFormats, "yaml") {
		t.Error("yaml should not be a known format")
	}
	if containsString(nil, "") {
		t.Error("nil slice contains nothing")
	}
}

func TestJoinArgs(t *testing.T) {
	if got := joinArgs([]string{"what", "is", "go?"}); got != "what is go?" {
		t.Errorf("joinArgs = %q", got)
	}
	if got := joinArgs([]string{" ", ""}); got != "" {
		t.Errorf("joinArgs of blanks = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\n  \"a\": 1\n}\n" {
		t.Errorf("writeJSON = %q", buf.String())
	}
}
