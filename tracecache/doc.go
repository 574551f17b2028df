// Package tracecache implements a purely-additive on-disk snapshot format
// for a *trace.Collection, letting repeated pipeline invocations (list,
// repack, convert) skip re-reading and re-assembling Mini-SEED input.
//
// Layout:
//
//	[32-byte Header]
//	[index: N * 24-byte IndexEntry, sorted by source hash]
//	[timestamp payload: one delta-of-delta varint run per segment]
//	[value payload: one raw little-endian sample run per segment]
//
// Each payload is optionally compressed independently via the
// compress.Codec named in the Header's Flags (see EncodeCompressionFlags);
// IndexEntry records each segment's on-disk (possibly compressed) payload
// lengths so a Reader can slice both without scanning.
package tracecache
