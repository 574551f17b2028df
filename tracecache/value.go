package tracecache

import "github.com/geokit/mseed2sac/endian"

var cacheOrder = endian.GetLittleEndianEngine()

func encodeInt32Values(values []int32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		cacheOrder.PutUint32(buf[i*4:i*4+4], uint32(v))
	}

	return buf
}

func decodeInt32Values(data []byte, count int) []int32 {
	out := make([]int32, count)
	for i := 0; i < count; i++ {
		out[i] = int32(cacheOrder.Uint32(data[i*4 : i*4+4]))
	}

	return out
}

func encodeFloat32Values(values []float32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		cacheOrder.PutUint32(buf[i*4:i*4+4], float32bitsOf(v))
	}

	return buf
}

func decodeFloat32Values(data []byte, count int) []float32 {
	out := make([]float32, count)
	for i := 0; i < count; i++ {
		out[i] = float32fromBitsOf(cacheOrder.Uint32(data[i*4 : i*4+4]))
	}

	return out
}

func encodeFloat64Values(values []float64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		cacheOrder.PutUint64(buf[i*8:i*8+8], float64bitsOf(v))
	}

	return buf
}

func decodeFloat64Values(data []byte, count int) []float64 {
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		out[i] = float64fromBitsOf(cacheOrder.Uint64(data[i*8 : i*8+8]))
	}

	return out
}
