package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tube-chat/infrastructure/utils"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"standard watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch URL without scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch URL with extra params before v", "https://www.youtube.com/watch?feature=shared&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch URL with params after v", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short URL with timestamp", "https://youtu.be/dQw4w9WgXcQ?t=30", "dQw4w9WgXcQ", true},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"mobile URL", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"bare video ID", "dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"ID with underscore and hyphen", "https://youtu.be/a_b-c_d-e_f", "a_b-c_d-e_f", true},
		{"empty string", "", "", false},
		{"unrelated URL", "https://vimeo.com/123456789", "", false},
		{"too-short token", "abc123", "", false},
		{"watch URL with short ID", "https://www.youtube.com/watch?v=short", "", false},
		{"plain text", "just some words", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := utils.ExtractVideoID(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectURLs(t *testing.T) {
	t.Run("no URLs in text", func(t *testing.T) {
		assert.Empty(t, utils.DetectURLs("tell me about rate limiting"))
		assert.Empty(t, utils.DetectURLs(""))
	})

	t.Run("single URL embedded in text", func(t *testing.T) {
		urls := utils.DetectURLs("summarize https://www.youtube.com/watch?v=dQw4w9WgXcQ please")
		assert.Equal(t, []string{"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}, urls)
	})

	t.Run("multiple URLs preserve input order", func(t *testing.T) {
		urls := utils.DetectURLs("compare https://youtu.be/aaaaaaaaaaa and https://youtu.be/bbbbbbbbbbb")
		assert.Equal(t, []string{"https://youtu.be/aaaaaaaaaaa", "https://youtu.be/bbbbbbbbbbb"}, urls)
	})

	t.Run("exact duplicates are removed", func(t *testing.T) {
		urls := utils.DetectURLs("https://youtu.be/aaaaaaaaaaa again https://youtu.be/aaaaaaaaaaa")
		assert.Equal(t, []string{"https://youtu.be/aaaaaaaaaaa"}, urls)
	})

	t.Run("different formats of the same video both survive", func(t *testing.T) {
		urls := utils.DetectURLs("https://youtu.be/aaaaaaaaaaa vs https://www.youtube.com/watch?v=aaaaaaaaaaa")
		assert.Len(t, urls, 2)
	})

	t.Run("bare video ID is not a URL", func(t *testing.T) {
		assert.Empty(t, utils.DetectURLs("the id is dQw4w9WgXcQ"))
	})
}

func TestStripVideoURLs(t *testing.T) {
	t.Run("removes URL and collapses whitespace", func(t *testing.T) {
		got := utils.StripVideoURLs("summarize   https://www.youtube.com/watch?v=dQw4w9WgXcQ   for me")
		assert.Equal(t, "summarize for me", got)
	})

	t.Run("message that is only a URL becomes empty", func(t *testing.T) {
		assert.Equal(t, "", utils.StripVideoURLs("https://youtu.be/dQw4w9WgXcQ"))
	})

	t.Run("text without URLs is untouched", func(t *testing.T) {
		assert.Equal(t, "what did they say", utils.StripVideoURLs("what did they say"))
	})
}
