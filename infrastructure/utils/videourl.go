package utils

import (
	"regexp"
	"strings"
)

// Recognized YouTube URL shapes. The capture group is always the 11-character
// video ID. The bare-token pattern is only consulted by ExtractVideoID.
var (
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)youtube\.com/watch\?(?:[^\s&]*&)*v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?i)youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?i)youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
	}

	videoURLPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.|m\.)?(?:youtube\.com/(?:watch\?[^\s]*?v=|embed/)[a-zA-Z0-9_-]{11}[^\s]*|youtu\.be/[a-zA-Z0-9_-]{11}[^\s]*)`)
)

// ExtractVideoID returns the video ID embedded in a YouTube URL, or a bare
// 11-character token passed as-is. The first matching pattern wins.
func ExtractVideoID(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}

// DetectURLs scans free text for YouTube links and returns the unique matches
// in first-seen order. Dedup is on the raw URL string: two differently
// formatted links to the same video are both reported; the cache absorbs the
// duplicate lookup downstream.
func DetectURLs(text string) []string {
	if text == "" {
		return nil
	}
	matches := videoURLPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		urls = append(urls, m)
	}
	return urls
}

// StripVideoURLs removes every recognized video link from the text, collapsing
// the surrounding whitespace. Used to turn a chat message into the effective
// query once its links have been resolved.
func StripVideoURLs(text string) string {
	stripped := videoURLPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(stripped), " ")
}
