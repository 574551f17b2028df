package tracecache

import "math"

func float32bitsOf(v float32) uint32     { return math.Float32bits(v) }
func float32fromBitsOf(b uint32) float32 { return math.Float32frombits(b) }
func float64bitsOf(v float64) uint64     { return math.Float64bits(v) }
func float64fromBitsOf(b uint64) float64 { return math.Float64frombits(b) }
