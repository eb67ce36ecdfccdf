// ABOUTME: Caption cleanup applied to every fetched cue
// ABOUTME: Removes bracketed sound markers, decodes entities, strips markup, collapses whitespace
package transcript

import (
	"html"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
)

var (
	soundMarkerRe = regexp.MustCompile(`\[(?i:music|applause|laughter|laughs|cheering|silence|inaudible|noise|foreign)\]|♪+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Scrub normalizes one caption cue
func Scrub(text string) string {
	text = plainText(text)
	text = soundMarkerRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// plainText drops markup such as <font> or <c> tags and decodes entities.
// Caption payloads are often double-escaped, so entities are decoded a second time.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	var sb strings.Builder
	z := nethtml.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			return html.UnescapeString(sb.String())
		case nethtml.TextToken:
			sb.Write(z.Text())
		}
	}
}

