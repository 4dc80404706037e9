package rle

import "io"

// BooleanRLE packs booleans MSB-first into bytes, eight per byte, and feeds
// the resulting bytes through ByteRLE. See spec §4.1.
type BooleanRLE struct {
	byteRLE *ByteRLE

	cur   byte
	nbits int
}

// NewBooleanRLE wraps w (typically a *compress.Stream) with boolean bit
// packing plus byte RLE framing.
func NewBooleanRLE(w io.Writer) *BooleanRLE {
	return &BooleanRLE{byteRLE: NewByteRLE(w)}
}

// Write appends one boolean, true packing to bit value 1.
func (e *BooleanRLE) Write(v bool) error {
	e.cur <<= 1
	if v {
		e.cur |= 1
	}
	e.nbits++
	if e.nbits == 8 {
		if err := e.byteRLE.Write(e.cur); err != nil {
			return err
		}
		e.cur = 0
		e.nbits = 0
	}
	return nil
}

// Finish pads any partial byte with zero bits and flushes the underlying
// ByteRLE encoder.
func (e *BooleanRLE) Finish() error {
	if e.nbits > 0 {
		e.cur <<= uint(8 - e.nbits)
		if err := e.byteRLE.Write(e.cur); err != nil {
			return err
		}
		e.cur = 0
		e.nbits = 0
	}
	return e.byteRLE.Finish()
}

// EstimatedSize mirrors ByteRLE's detail floor, plus the partial byte being staged.
func (e *BooleanRLE) EstimatedSize(streamWritten int64) int64 {
	n := e.byteRLE.EstimatedSize(streamWritten)
	if e.nbits > 0 {
		n++
	}
	return n
}
