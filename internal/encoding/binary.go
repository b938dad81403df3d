package encoding

import (
	"encoding/binary"
)

// Key packs a depth and a cell coordinate tuple into a string usable as a map
// key. Values are written as uvarints so each one is self delimiting.
func Key(depth int, coords []int) string {
	buf := make([]byte, 0, 1+len(coords)*3)
	buf = binary.AppendUvarint(buf, uint64(depth))
	for _, c := range coords {
		buf = binary.AppendUvarint(buf, uint64(c))
	}
	return string(buf)
}

// AppendKey is Key writing into buf, handy for lookups that want to reuse a
// scratch buffer.
func AppendKey(buf []byte, depth int, coords []int) []byte {
	buf = binary.AppendUvarint(buf[:0], uint64(depth))
	for _, c := range coords {
		buf = binary.AppendUvarint(buf, uint64(c))
	}
	return buf
}
