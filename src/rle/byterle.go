package rle

import "io"

const (
	minRepeat      = 3
	maxLiteralSize = 128
	maxRunSize     = minRepeat + 127 // 130
)

// ByteRLE implements ORC v1's byte run-length encoding: a signed control
// byte followed either by one repeated byte (run) or by a block of literal
// bytes. See spec §4.1.
type ByteRLE struct {
	w io.Writer

	buf   []byte
	inRun bool
}

// NewByteRLE wraps w (typically a *compress.Stream) with byte RLE framing.
func NewByteRLE(w io.Writer) *ByteRLE {
	return &ByteRLE{w: w}
}

// Write appends one byte to the encoded sequence.
func (e *ByteRLE) Write(b byte) error {
	e.buf = append(e.buf, b)
	n := len(e.buf)

	if e.inRun {
		if e.buf[n-1] == e.buf[0] {
			if n == maxRunSize {
				return e.flushRun()
			}
			return nil
		}
		last := e.buf[n-1]
		e.buf = e.buf[:n-1]
		if err := e.flushRun(); err != nil {
			return err
		}
		e.buf = append(e.buf, last)
		return nil
	}

	if n >= minRepeat && e.buf[n-1] == e.buf[n-2] && e.buf[n-2] == e.buf[n-3] {
		head := n - minRepeat
		if head > 0 {
			if err := e.flushLiteralsN(head); err != nil {
				return err
			}
		}
		e.inRun = true
		return nil
	}

	if n == maxLiteralSize {
		return e.flushLiterals()
	}
	return nil
}

func (e *ByteRLE) flushRun() error {
	if len(e.buf) == 0 {
		return nil
	}
	header := [2]byte{byte(int8(len(e.buf) - minRepeat)), e.buf[0]}
	if _, err := e.w.Write(header[:]); err != nil {
		return err
	}
	e.buf = e.buf[:0]
	e.inRun = false
	return nil
}

func (e *ByteRLE) flushLiteralsN(count int) error {
	if count == 0 {
		return nil
	}
	header := [1]byte{byte(int8(-count))}
	if _, err := e.w.Write(header[:]); err != nil {
		return err
	}
	if _, err := e.w.Write(e.buf[:count]); err != nil {
		return err
	}
	e.buf = append(e.buf[:0], e.buf[count:]...)
	return nil
}

func (e *ByteRLE) flushLiterals() error {
	return e.flushLiteralsN(len(e.buf))
}

// EstimatedSize returns bytes already handed to the destination stream plus
// the as-yet-unflushed buffered state, per spec §4.1's "detail floor".
func (e *ByteRLE) EstimatedSize(streamWritten int64) int64 {
	return streamWritten + int64(len(e.buf))
}

// Finish flushes any residual run or literal block.
func (e *ByteRLE) Finish() error {
	if e.inRun {
		return e.flushRun()
	}
	return e.flushLiterals()
}
