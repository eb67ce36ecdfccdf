// ABOUTME: SentimentAnalyzer classifies a transcript's overall sentiment with the generator
// ABOUTME: Parses the structured JSON reply when possible and falls back to a keyword heuristic
package core

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/harper/tubewise/internal/llm"
	"github.com/harper/tubewise/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// SentimentTranscriptLimit is the number of transcript characters sent for analysis
	SentimentTranscriptLimit = 4000

	heuristicSummaryLen = 100

	sentimentSystemPrompt = `You are a sentiment analysis expert. Analyze the sentiment of video transcripts and provide detailed insights. Return the analysis in the following JSON format:
{
    "sentiment": "positive" or "negative",
    "confidence": "high" or "medium" or "low",
    "summary": "brief explanation of the sentiment"
}`

	sentimentUserPrompt = `Analyze the sentiment of this video transcript. Consider:
- Speaker's tone and word choice
- Overall message and themes
- Emotional elements
- Key phrases and expressions

Transcript: `
)

// SentimentAnalyzer runs sentiment analysis over transcripts
type SentimentAnalyzer struct {
	generator llm.Generator
}

// NewSentimentAnalyzer creates a SentimentAnalyzer
func NewSentimentAnalyzer(generator llm.Generator) *SentimentAnalyzer {
	return &SentimentAnalyzer{generator: generator}
}

// Analyze asks the generator for a sentiment verdict on transcript.
// Only generator failures are returned; an unparseable reply yields a heuristic result.
func (s *SentimentAnalyzer) Analyze(ctx context.Context, transcript string) (models.SentimentResult, error) {
	reply, err := s.generator.Complete(ctx, sentimentSystemPrompt, sentimentUserPrompt+truncateChars(transcript, SentimentTranscriptLimit))
	if err != nil {
		return models.SentimentResult{}, models.NewError(models.KindGeneration, "analyze sentiment", err)
	}

	result := ParseSentiment(reply)
	log.Debug().
		Str("sentiment", result.Sentiment).
		Str("source", string(result.Source)).
		Msg("Analyzed sentiment")
	return result, nil
}

// ParseSentiment interprets a model reply. It never fails.
func ParseSentiment(reply string) models.SentimentResult {
	if r, ok := parseStructuredSentiment(reply); ok {
		return r
	}
	return heuristicSentiment(reply)
}

type sentimentReply struct {
	Sentiment  string `json:"sentiment"`
	Confidence string `json:"confidence"`
	Summary    string `json:"summary"`
}

func parseStructuredSentiment(reply string) (models.SentimentResult, bool) {
	body := stripFences(reply)
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return models.SentimentResult{}, false
	}

	var parsed sentimentReply
	if err := json.Unmarshal([]byte(body[start:end+1]), &parsed); err != nil {
		return models.SentimentResult{}, false
	}

	sentiment := strings.ToLower(strings.TrimSpace(parsed.Sentiment))
	switch sentiment {
	case models.SentimentPositive, models.SentimentNegative:
	default:
		return models.SentimentResult{}, false
	}

	confidence := strings.ToLower(strings.TrimSpace(parsed.Confidence))
	switch confidence {
	case "high", "medium", "low":
	default:
		return models.SentimentResult{}, false
	}

	summary := strings.TrimSpace(parsed.Summary)
	if summary == "" {
		return models.SentimentResult{}, false
	}

	return models.SentimentResult{
		Sentiment:  sentiment,
		Confidence: confidence,
		Summary:    summary,
		Source:     models.SentimentSourceStructured,
	}, true
}

func heuristicSentiment(reply string) models.SentimentResult {
	content := strings.ToLower(strings.TrimSpace(reply))
	sentiment := models.SentimentNegative
	if strings.Contains(content, models.SentimentPositive) {
		sentiment = models.SentimentPositive
	}
	return models.SentimentResult{
		Sentiment:  sentiment,
		Confidence: "medium",
		Summary:    prefixRunes(content, heuristicSummaryLen) + "...",
		Source:     models.SentimentSourceHeuristic,
	}
}

// stripFences removes a surrounding markdown code fence
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.Index(s, "\n"); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// truncateChars cuts s to n characters and marks the cut with an ellipsis
func truncateChars(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return prefixRunes(s, n) + "..."
}

func prefixRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
