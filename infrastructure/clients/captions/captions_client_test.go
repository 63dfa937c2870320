package captions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"disabled captions", errors.New("Transcript is disabled for video abc12345678"), ErrTranscriptDisabled},
		{"unplayable video", errors.New("Could not find video abc12345678: This video is unavailable"), ErrNoTranscript},
		{"network failure", errors.New("timedtext fetch failed: connection refused"), ErrFetchFailed},
		{"upstream status", errors.New("player endpoint returned status 503"), ErrFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify("abc12345678", tt.err), tt.want)
		})
	}
}

func TestClassifiedErrorMessages(t *testing.T) {
	assert.Equal(t, "Transcript is disabled for this video", ErrTranscriptDisabled.Error())
	assert.Equal(t, "No transcript available for this video", ErrNoTranscript.Error())
	assert.Equal(t, "Failed to fetch transcript", ErrFetchFailed.Error())
}

func TestParseTimedText(t *testing.T) {
	data := []byte(`{
		"events": [
			{"tStartMs": 0, "dDurationMs": 1500, "segs": [{"utf8": "hello "}, {"utf8": "world"}]},
			{"tStartMs": 1500, "dDurationMs": 500, "segs": [{"utf8": "\n"}]},
			{"tStartMs": 2000, "dDurationMs": 3250, "segs": [{"utf8": "second line"}]},
			{"tStartMs": 5250, "dDurationMs": 100}
		]
	}`)

	segments, err := parseTimedText(data)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, "hello world", segments[0].Text)
	assert.Equal(t, 0.0, segments[0].Offset)
	assert.Equal(t, 1.5, segments[0].Duration)

	assert.Equal(t, "second line", segments[1].Text)
	assert.Equal(t, 2.0, segments[1].Offset)
	assert.Equal(t, 3.25, segments[1].Duration)
}

func TestParseTimedTextEmptyDocument(t *testing.T) {
	segments, err := parseTimedText([]byte(`{"events": []}`))
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestParseTimedTextInvalidJSON(t *testing.T) {
	_, err := parseTimedText([]byte(`<html>not json</html>`))
	require.Error(t, err)
}
