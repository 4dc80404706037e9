package rle

import (
	"encoding/binary"
	"io"
	"math"
)

// FloatWriter writes IEEE 754 binary32 values little-endian, with no RLE
// framing - ORC's FLOAT DATA stream is raw. See spec §4.1.
type FloatWriter struct {
	w io.Writer
}

func NewFloatWriter(w io.Writer) *FloatWriter {
	return &FloatWriter{w: w}
}

func (e *FloatWriter) Write(v float32) error {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(v))
	_, err := e.w.Write(scratch[:])
	return err
}

// DoubleWriter writes IEEE 754 binary64 values little-endian.
type DoubleWriter struct {
	w io.Writer
}

func NewDoubleWriter(w io.Writer) *DoubleWriter {
	return &DoubleWriter{w: w}
}

func (e *DoubleWriter) Write(v float64) error {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
	_, err := e.w.Write(scratch[:])
	return err
}
