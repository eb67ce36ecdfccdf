// ABOUTME: Video ID extraction from bare IDs and the common YouTube URL shapes
// ABOUTME: Accepts watch, short-link, shorts, embed, and live URLs
package transcript

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/harper/tubewise/internal/models"
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ExtractVideoID returns the video ID named by input, which may be an ID or a URL
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", models.NewError(models.KindInvalidArgument, "video id", errors.New("video id is required"))
	}
	if videoIDRe.MatchString(input) {
		return input, nil
	}

	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", models.NewError(models.KindInvalidArgument, "video id", errors.New("not a video id or URL: "+input))
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch {
	case host == "youtu.be":
		id = segments[0]
	case strings.HasSuffix(host, "youtube.com") || strings.HasSuffix(host, "youtube-nocookie.com"):
		if v := u.Query().Get("v"); v != "" {
			id = v
		} else if len(segments) >= 2 {
			switch segments[0] {
			case "shorts", "embed", "live", "v":
				id = segments[1]
			}
		}
	}

	if !videoIDRe.MatchString(id) {
		return "", models.NewError(models.KindInvalidArgument, "video id", errors.New("no video id in URL: "+input))
	}
	return id, nil
}
