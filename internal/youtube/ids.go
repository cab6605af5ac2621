// Package youtube holds the external collaborators around the clip
// suggestion core: video id extraction, caption (timedtext) fetching,
// oEmbed metadata, and video link scraping.
package youtube

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls a video id out of the common YouTube URL shapes:
// youtube.com/watch?v=ID, youtube.com/shorts/ID, and youtu.be/ID.
func ExtractVideoID(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := u.Hostname()
	switch {
	case host == "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, true
		}
	case strings.HasSuffix(host, "youtube.com"):
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); id != "" {
				return id, true
			}
		}
		if rest, ok := strings.CutPrefix(u.Path, "/shorts/"); ok {
			if id := strings.Trim(rest, "/"); id != "" {
				return id, true
			}
		}
	}
	return "", false
}
