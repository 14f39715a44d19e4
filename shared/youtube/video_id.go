package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
	"www.youtu.be":    true,
}

// ExtractVideoID returns the video ID from a bare ID or any of the usual
// YouTube URL shapes (watch?v=, youtu.be/, /embed/, /v/, /shorts/).
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("video URL or ID is required")
	}

	if videoIDPattern.MatchString(input) {
		return input, nil
	}

	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	host := strings.ToLower(u.Hostname())
	if !youtubeHosts[host] {
		return "", fmt.Errorf("not a YouTube URL: %s", input)
	}

	var id string
	switch {
	case u.Query().Get("v") != "":
		id = u.Query().Get("v")
	case strings.HasSuffix(host, "youtu.be"):
		id = strings.Trim(u.Path, "/")
	default:
		for _, prefix := range []string{"/embed/", "/v/", "/shorts/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id = strings.SplitN(strings.TrimPrefix(u.Path, prefix), "/", 2)[0]
				break
			}
		}
	}

	if strings.Contains(u.Path, "/playlist") && id == "" {
		return "", fmt.Errorf("this is a playlist URL, not a video URL: %s", input)
	}

	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("could not extract video ID from URL: %s", input)
	}

	return id, nil
}
