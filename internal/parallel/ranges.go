package parallel

// Range is a half-open interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns Hi-Lo.
func (r Range) Len() int { return r.Hi - r.Lo }

// ChunkSize returns max(floor, n/parts), the chunk length that balances
// per-task overhead against load.
func ChunkSize(n, floor, parts int) int {
	if parts <= 0 {
		parts = 1
	}
	size := n / parts
	if size < floor {
		size = floor
	}
	if size <= 0 {
		size = 1
	}
	return size
}

// Split partitions [0, n) into contiguous ranges of ChunkSize(n, floor, parts).
// The result is appended to dst.
func Split(dst []Range, n, floor, parts int) []Range {
	dst = dst[:0]
	if n <= 0 {
		return dst
	}
	size := ChunkSize(n, floor, parts)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		dst = append(dst, Range{Lo: lo, Hi: hi})
	}
	return dst
}
