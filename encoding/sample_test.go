package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleSize(t *testing.T) {
	cases := []struct {
		code EncodingCode
		want int
	}{
		{EncodingASCII, 1},
		{EncodingInt16, 2},
		{EncodingInt32, 4},
		{EncodingFloat32, 4},
		{EncodingFloat64, 8},
		{EncodingSteim1, 0},
		{EncodingSteim2, 0},
	}

	for _, c := range cases {
		require.Equal(t, c.want, SampleSize(c.code))
	}
}
