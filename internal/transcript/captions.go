// ABOUTME: Parsers for caption payloads: YouTube timedtext (srv1 and srv3) and WebVTT
// ABOUTME: Every parser returns scrubbed cues with start and duration in seconds
package transcript

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/harper/tubewise/internal/models"
	nethtml "golang.org/x/net/html"
)

// ParseTimedText reads a timedtext document. It understands the classic
// <text start="s" dur="s"> layout and the format 3 <p t="ms" d="ms"> layout.
func ParseTimedText(body string) ([]models.TranscriptEntry, error) {
	var (
		entries []models.TranscriptEntry
		current *models.TranscriptEntry
		text    strings.Builder
	)

	z := nethtml.NewTokenizer(strings.NewReader(body))
	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			if len(entries) == 0 {
				return nil, fmt.Errorf("no caption cues in timedtext payload")
			}
			return entries, nil

		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag != "text" && tag != "p" {
				continue
			}
			attrs := map[string]string{}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				attrs[string(key)] = string(val)
			}
			entry := cueTiming(tag, attrs)
			if tt == nethtml.SelfClosingTagToken {
				continue
			}
			current = &entry
			text.Reset()

		case nethtml.TextToken:
			if current != nil {
				text.Write(z.Text())
			}

		case nethtml.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if current == nil || (tag != "text" && tag != "p") {
				continue
			}
			current.Text = Scrub(text.String())
			if current.Text != "" {
				entries = append(entries, *current)
			}
			current = nil
		}
	}
}

func cueTiming(tag string, attrs map[string]string) models.TranscriptEntry {
	var e models.TranscriptEntry
	if tag == "text" {
		e.Start, _ = strconv.ParseFloat(attrs["start"], 64)
		e.Duration, _ = strconv.ParseFloat(attrs["dur"], 64)
		return e
	}
	ms, _ := strconv.ParseFloat(attrs["t"], 64)
	dur, _ := strconv.ParseFloat(attrs["d"], 64)
	e.Start = ms / 1000
	e.Duration = dur / 1000
	return e
}

// ParseVTT reads a WebVTT document. Cue identifiers, NOTE blocks, and cue settings are ignored.
func ParseVTT(content string) ([]models.TranscriptEntry, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(content, "WEBVTT") {
		return nil, fmt.Errorf("invalid VTT format: missing WEBVTT header")
	}

	var entries []models.TranscriptEntry
	for _, block := range strings.Split(content, "\n\n") {
		scanner := bufio.NewScanner(strings.NewReader(strings.TrimSpace(block)))
		var (
			timing string
			lines  []string
		)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case timing == "" && strings.Contains(line, "-->"):
				timing = line
			case timing != "":
				lines = append(lines, line)
			}
		}
		if timing == "" {
			continue
		}

		start, end, err := parseCueTiming(timing)
		if err != nil {
			return nil, err
		}
		text := Scrub(strings.Join(lines, " "))
		if text == "" {
			continue
		}
		entries = append(entries, models.TranscriptEntry{Text: text, Start: start, Duration: end - start})
	}
	return entries, nil
}

func parseCueTiming(line string) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	start, err := parseVTTTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start timestamp: %w", err)
	}
	// Cue settings may follow the end timestamp
	fields := strings.Fields(parts[1])
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("invalid cue timing %q", line)
	}
	end, err := parseVTTTimestamp(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end timestamp: %w", err)
	}
	return start, end, nil
}

// parseVTTTimestamp accepts HH:MM:SS.mmm and MM:SS.mmm, returning seconds
func parseVTTTimestamp(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	seconds, err := strconv.ParseFloat(strings.Replace(parts[len(parts)-1], ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", ts, err)
	}
	minutes, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", ts, err)
	}
	hours := 0
	if len(parts) == 3 {
		if hours, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid hours in %q: %w", ts, err)
		}
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}
