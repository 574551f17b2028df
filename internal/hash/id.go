// Package hash provides a fast, non-cryptographic hash used to key trace
// segments and trace-cache index entries by source name (net/sta/loc/chan).
package hash

import "github.com/cespare/xxhash/v2"

// SourceID computes the xxHash64 of a source name string, e.g.
// "IU.ANMO.00.BHZ" or "IU.ANMO.00.BHZ.Q".
func SourceID(name string) uint64 {
	return xxhash.Sum64String(name)
}
