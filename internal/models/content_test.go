// ABOUTME: Tests for blog options and sentiment result formatting
// ABOUTME: Verifies parsing defaults, rejection of unknown values, and display output
package models

import (
	"errors"
	"testing"
)

func TestParseTone(t *testing.T) {
	tests := []struct {
		in      string
		want    Tone
		wantErr bool
	}{
		{in: "", want: ToneInformative},
		{in: "formal", want: ToneFormal},
		{in: "Casual", want: ToneCasual},
		{in: " INFORMATIVE ", want: ToneInformative},
		{in: "sarcastic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTone(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseTone(%q) error = %v, want invalid argument", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTone(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in        string
		want      Length
		wantWords int
		wantErr   bool
	}{
		{in: "", want: LengthMedium, wantWords: 1200},
		{in: "short", want: LengthShort, wantWords: 600},
		{in: "Medium", want: LengthMedium, wantWords: 1200},
		{in: "long", want: LengthLong, wantWords: 1800},
		{in: "epic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseLength(%q) error = %v, want invalid argument", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLength(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLength(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if got.TargetWords() != tt.wantWords {
				t.Errorf("TargetWords() = %d, want %d", got.TargetWords(), tt.wantWords)
			}
		})
	}
}

func TestSentimentResult_Format(t *testing.T) {
	r := SentimentResult{Sentiment: "positive", Confidence: "medium", Summary: "upbeat talk..."}
	want := "Overall Sentiment: Positive\nConfidence: Medium\nSummary: upbeat talk..."
	if got := r.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
