package render

import (
	"fmt"
	"regexp"
	"strings"
)

var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
}

// DirectLink turns a Google Drive share link into a direct view link that
// can be embedded as an image. Other links are returned unchanged.
func DirectLink(url string) string {
	if url == "" || !strings.Contains(url, "drive.google.com") {
		return url
	}
	for _, p := range driveIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return fmt.Sprintf("https://drive.google.com/uc?export=view&id=%s", m[1])
		}
	}
	return url
}

func directLinks(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = DirectLink(u)
	}
	return out
}
