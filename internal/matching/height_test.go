package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeight(t *testing.T) {
	tests := []struct {
		height string
		want   int
	}{
		{`5'6"`, 66},
		{`6'0"`, 72},
		{`4'10"`, 58},
		{`5'10"`, 70},
		{`about 5'11" tall`, 71},
		{``, 0},
		{`5ft 6in`, 0},
		{`5'6`, 0},
		{`170cm`, 0},
		{`99999999999999999999'1"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.height, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHeight(tt.height))
		})
	}
}
