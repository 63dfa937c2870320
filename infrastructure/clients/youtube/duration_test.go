package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT2H", 7200},
		{"PT45S", 45},
		{"PT10M", 600},
		{"PT0S", 0},
		{"", 0},
		{"P1D", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseISODuration(tt.input))
		})
	}
}
