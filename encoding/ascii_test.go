package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestASCIIEncoderWrite(t *testing.T) {
	enc := NewASCIIEncoder()
	enc.WriteSlice([]byte("hello "))
	enc.Write('!')

	require.Equal(t, "hello !", string(enc.Bytes()))
	require.Equal(t, 7, enc.Len())
	require.Equal(t, 7, enc.Size())
}

func TestASCIIEncoderReset(t *testing.T) {
	enc := NewASCIIEncoder()
	enc.WriteSlice([]byte("data"))
	enc.Reset()

	require.Equal(t, 0, enc.Len())
}

func TestDecodeASCII(t *testing.T) {
	data := []byte("log message here")

	out, err := DecodeASCII(data, 12)
	require.NoError(t, err)
	require.Equal(t, "log message ", string(out))
}

func TestDecodeASCIITruncated(t *testing.T) {
	_, err := DecodeASCII([]byte("short"), 100)
	require.Error(t, err)
}

func TestDecodeASCIICopiesData(t *testing.T) {
	data := []byte("mutate me")
	out, err := DecodeASCII(data, len(data))
	require.NoError(t, err)

	out[0] = 'X'
	require.Equal(t, byte('m'), data[0])
}
