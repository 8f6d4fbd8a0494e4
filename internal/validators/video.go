package validators

import (
	"net/url"
	"strings"
)

// IsYouTubeURL accepts the watch, short-link and embed forms. Drill video
// links are restricted to YouTube so the frontend can embed them.
func IsYouTubeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	switch host {
	case "youtube.com", "m.youtube.com":
		if strings.HasPrefix(u.Path, "/embed/") && len(u.Path) > len("/embed/") {
			return true
		}
		return u.Path == "/watch" && u.Query().Get("v") != ""
	case "youtu.be":
		return len(strings.Trim(u.Path, "/")) > 0
	}

	return false
}
