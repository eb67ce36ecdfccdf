// ABOUTME: Operational counters for the transcript service
// ABOUTME: Atomic counters with a snapshot map and a plain text rendering for /metrics
package service

import (
	"fmt"
	"strings"
	"sync/atomic"
)

type counters struct {
	TranscriptFetches atomic.Int64
	FetchErrors       atomic.Int64
	IndexBuilds       atomic.Int64
	IndexErrors       atomic.Int64
	Questions         atomic.Int64
	BlogPosts         atomic.Int64
	SentimentRuns     atomic.Int64
	WordClouds        atomic.Int64
	OperationErrors   atomic.Int64
}

var statKeys = []string{
	"transcript_fetches", "fetch_errors",
	"index_builds", "index_errors",
	"questions", "blog_posts", "sentiment_runs", "word_clouds",
	"operation_errors", "sessions",
}

// Stats is a point-in-time snapshot of service counters
type Stats map[string]int64

// Format renders the snapshot one "name value" pair per line in a stable order
func (s Stats) Format() string {
	var sb strings.Builder
	for _, k := range statKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, s[k])
	}
	return sb.String()
}

// Stats returns a snapshot of the service counters
func (s *Service) Stats() Stats {
	return Stats{
		"transcript_fetches": s.counters.TranscriptFetches.Load(),
		"fetch_errors":       s.counters.FetchErrors.Load(),
		"index_builds":       s.counters.IndexBuilds.Load(),
		"index_errors":       s.counters.IndexErrors.Load(),
		"questions":          s.counters.Questions.Load(),
		"blog_posts":         s.counters.BlogPosts.Load(),
		"sentiment_runs":     s.counters.SentimentRuns.Load(),
		"word_clouds":        s.counters.WordClouds.Load(),
		"operation_errors":   s.counters.OperationErrors.Load(),
		"sessions":           int64(s.store.Len()),
	}
}
