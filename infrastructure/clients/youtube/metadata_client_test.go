package youtube

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
	yt "google.golang.org/api/youtube/v3"

	"tube-chat/domain/model"
)

func TestConvertToVideoMetadata(t *testing.T) {
	video := &yt.Video{
		Id: "dQw4w9WgXcQ",
		Snippet: &yt.VideoSnippet{
			Title:        "A Title",
			ChannelTitle: "A Channel",
			ChannelId:    "UC123",
			Description:  "desc",
			Tags:         []string{"music"},
			PublishedAt:  "2009-10-25T06:57:33Z",
			Thumbnails: &yt.ThumbnailDetails{
				High:    &yt.Thumbnail{Url: "https://i.ytimg.com/high.jpg"},
				Default: &yt.Thumbnail{Url: "https://i.ytimg.com/default.jpg"},
			},
		},
		ContentDetails: &yt.VideoContentDetails{
			Duration:   "PT3M33S",
			Definition: "hd",
			Caption:    "true",
		},
		Statistics: &yt.VideoStatistics{
			ViewCount: 1000,
			LikeCount: 50,
		},
	}

	meta := convertToVideoMetadata(video)
	assert.Equal(t, "dQw4w9WgXcQ", meta.VideoID)
	assert.Equal(t, "A Title", meta.Title)
	assert.Equal(t, "A Channel", meta.Author)
	assert.Equal(t, "UC123", meta.ChannelID)
	assert.Equal(t, int64(213), meta.DurationSec)
	assert.Equal(t, int64(1000), meta.ViewCount)
	assert.True(t, meta.HasCaptions)
	// maxres is absent so the next preference wins
	assert.Equal(t, "https://i.ytimg.com/high.jpg", meta.Thumbnail)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", meta.URL)
}

func TestConvertToVideoMetadataPlaceholders(t *testing.T) {
	meta := convertToVideoMetadata(&yt.Video{Id: "dQw4w9WgXcQ"})
	assert.Equal(t, model.DefaultTitle, meta.Title)
	assert.Equal(t, model.DefaultAuthor, meta.Author)
	assert.Empty(t, meta.Thumbnail)
}

func TestIsQuotaExceeded(t *testing.T) {
	assert.True(t, isQuotaExceeded(&googleapi.Error{
		Code:    http.StatusForbidden,
		Message: "The request cannot be completed because you have exceeded your quota.",
	}))
	assert.True(t, isQuotaExceeded(&googleapi.Error{
		Code:   http.StatusForbidden,
		Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}},
	}))
	assert.False(t, isQuotaExceeded(&googleapi.Error{
		Code:    http.StatusForbidden,
		Message: "Access forbidden",
	}))
	assert.False(t, isQuotaExceeded(&googleapi.Error{
		Code:    http.StatusNotFound,
		Message: "quota",
	}))
	assert.False(t, isQuotaExceeded(errors.New("plain error")))
}
