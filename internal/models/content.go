// ABOUTME: Content option models for blog generation and sentiment results
// ABOUTME: Tone and Length parse user input; SentimentResult renders the display summary
package models

import (
	"fmt"
	"strings"
)

// Tone is the writing register requested for a blog post
type Tone string

const (
	ToneFormal      Tone = "formal"
	ToneCasual      Tone = "casual"
	ToneInformative Tone = "informative"

	DefaultTone = ToneInformative
)

// IsValid reports whether t is a known tone
func (t Tone) IsValid() bool {
	switch t {
	case ToneFormal, ToneCasual, ToneInformative:
		return true
	}
	return false
}

// ParseTone accepts a case-insensitive tone name; empty yields DefaultTone
func ParseTone(s string) (Tone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultTone, nil
	}
	t := Tone(s)
	if !t.IsValid() {
		return "", NewError(KindInvalidArgument, "parse tone", fmt.Errorf("unknown tone %q (want formal, casual or informative)", s))
	}
	return t, nil
}

// Length is the requested blog post size
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"

	DefaultLength = LengthMedium
)

var targetWords = map[Length]int{
	LengthShort:  600,
	LengthMedium: 1200,
	LengthLong:   1800,
}

// IsValid reports whether l is a known length
func (l Length) IsValid() bool {
	_, ok := targetWords[l]
	return ok
}

// TargetWords is the approximate word count for the length
func (l Length) TargetWords() int {
	return targetWords[l]
}

// ParseLength accepts a case-insensitive length name; empty yields DefaultLength
func ParseLength(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLength, nil
	}
	l := Length(s)
	if !l.IsValid() {
		return "", NewError(KindInvalidArgument, "parse length", fmt.Errorf("unknown length %q (want short, medium or long)", s))
	}
	return l, nil
}

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
)

// SentimentSource records how a SentimentResult was derived
type SentimentSource string

const (
	SentimentSourceStructured SentimentSource = "structured"
	SentimentSourceHeuristic  SentimentSource = "heuristic"
)

// SentimentResult is the outcome of a sentiment analysis
type SentimentResult struct {
	Sentiment  string          `json:"sentiment"`
	Confidence string          `json:"confidence"`
	Summary    string          `json:"summary"`
	Source     SentimentSource `json:"source"`
}

// Format renders the result as a three line display string
func (r SentimentResult) Format() string {
	return fmt.Sprintf("Overall Sentiment: %s\nConfidence: %s\nSummary: %s",
		capitalize(r.Sentiment), capitalize(r.Confidence), r.Summary)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
