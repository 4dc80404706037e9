package rle

import (
	"encoding/binary"
	"io"
)

// WriteUvarint writes v as unsigned LEB128 - ORC's VarInt format for
// unsigned integers is byte-for-byte what encoding/binary already
// implements, so no third-party varint library is introduced here (see
// DESIGN.md).
func WriteUvarint(w io.Writer, v uint64) (int64, error) {
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], v)
	written, err := w.Write(scratch[:n])
	return int64(written), err
}

// WriteVarint ZigZag-maps v and writes it as unsigned LEB128.
// encoding/binary.PutVarint performs exactly this ZigZag-then-LEB128
// encoding, matching spec §4.1's "signed values are ZigZag-mapped first".
func WriteVarint(w io.Writer, v int64) (int64, error) {
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutVarint(scratch[:], v)
	written, err := w.Write(scratch[:n])
	return int64(written), err
}

// ZigZag maps a signed value onto an unsigned one (0, -1, 1, -2, ... to
// 0, 1, 2, 3, ...), the same mapping WriteVarint applies before LEB128.
func ZigZag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// UnZigZag is ZigZag's inverse, kept for the tests that round-trip values
// through the encoder-level primitives (this module has no reader).
func UnZigZag(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}
