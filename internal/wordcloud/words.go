// ABOUTME: Word extraction and frequency counting for word clouds
// ABOUTME: Lowercases, strips punctuation, drops stop words and single characters
package wordcloud

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// StopWords are removed before counting
var StopWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
	"for", "of", "with", "by", "from", "up", "about", "into", "over", "after",
}

var punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// WordCount is a word and how often it occurs
type WordCount struct {
	Word  string
	Count int
}

// Tokenize returns the countable words of text in order
func Tokenize(text string, stop map[string]struct{}) []string {
	text = punctuationRe.ReplaceAllString(strings.ToLower(text), "")
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		if _, skip := stop[w]; skip {
			continue
		}
		words = append(words, w)
	}
	return words
}

// Frequencies counts words, most frequent first and alphabetical within a count
func Frequencies(words []string) []WordCount {
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}

func stopSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
