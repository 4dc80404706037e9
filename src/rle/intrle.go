package rle

import "io"

// SignedIntRLEv1 implements ORC v1's integer run-length encoding for signed
// values: a header byte selects either a constant-delta run (signed-byte
// delta + ZigZag varint base) or a literal block (ZigZag varint per value).
// See spec §4.1.
type SignedIntRLEv1 struct {
	w io.Writer

	buf   []int64
	inRun bool
	delta int64
}

func NewSignedIntRLEv1(w io.Writer) *SignedIntRLEv1 {
	return &SignedIntRLEv1{w: w}
}

func (e *SignedIntRLEv1) Write(v int64) error {
	e.buf = append(e.buf, v)
	n := len(e.buf)

	if e.inRun {
		if e.buf[n-1]-e.buf[n-2] == e.delta {
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

	if n >= minRepeat {
		d1 := e.buf[n-2] - e.buf[n-3]
		d2 := e.buf[n-1] - e.buf[n-2]
		if d1 == d2 && d1 >= -128 && d1 <= 127 {
			head := n - minRepeat
			if head > 0 {
				if err := e.flushLiteralsN(head); err != nil {
					return err
				}
			}
			e.inRun = true
			e.delta = d1
			return nil
		}
	}

	if n == maxLiteralSize {
		return e.flushLiterals()
	}
	return nil
}

func (e *SignedIntRLEv1) flushRun() error {
	if len(e.buf) == 0 {
		return nil
	}
	header := [2]byte{byte(int8(len(e.buf) - minRepeat)), byte(int8(e.delta))}
	if _, err := e.w.Write(header[:]); err != nil {
		return err
	}
	if _, err := WriteVarint(e.w, e.buf[0]); err != nil {
		return err
	}
	e.buf = e.buf[:0]
	e.inRun = false
	return nil
}

func (e *SignedIntRLEv1) flushLiteralsN(count int) error {
	if count == 0 {
		return nil
	}
	header := [1]byte{byte(int8(-count))}
	if _, err := e.w.Write(header[:]); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if _, err := WriteVarint(e.w, e.buf[i]); err != nil {
			return err
		}
	}
	e.buf = append(e.buf[:0], e.buf[count:]...)
	return nil
}

func (e *SignedIntRLEv1) flushLiterals() error {
	return e.flushLiteralsN(len(e.buf))
}

func (e *SignedIntRLEv1) EstimatedSize(streamWritten int64) int64 {
	return streamWritten + int64(len(e.buf))
}

func (e *SignedIntRLEv1) Finish() error {
	if e.inRun {
		return e.flushRun()
	}
	return e.flushLiterals()
}

// UnsignedIntRLEv1 is SignedIntRLEv1's counterpart for non-negative values -
// used for LENGTH and the nanosecond SECONDARY stream, which never ZigZag
// their values (they're unsigned by construction).
type UnsignedIntRLEv1 struct {
	w io.Writer

	buf   []uint64
	inRun bool
	delta int64
}

func NewUnsignedIntRLEv1(w io.Writer) *UnsignedIntRLEv1 {
	return &UnsignedIntRLEv1{w: w}
}

func (e *UnsignedIntRLEv1) Write(v uint64) error {
	e.buf = append(e.buf, v)
	n := len(e.buf)

	if e.inRun {
		if int64(e.buf[n-1])-int64(e.buf[n-2]) == e.delta {
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

	if n >= minRepeat {
		d1 := int64(e.buf[n-2]) - int64(e.buf[n-3])
		d2 := int64(e.buf[n-1]) - int64(e.buf[n-2])
		if d1 == d2 && d1 >= -128 && d1 <= 127 {
			head := n - minRepeat
			if head > 0 {
				if err := e.flushLiteralsN(head); err != nil {
					return err
				}
			}
			e.inRun = true
			e.delta = d1
			return nil
		}
	}

	if n == maxLiteralSize {
		return e.flushLiterals()
	}
	return nil
}

func (e *UnsignedIntRLEv1) flushRun() error {
	if len(e.buf) == 0 {
		return nil
	}
	header := [2]byte{byte(int8(len(e.buf) - minRepeat)), byte(int8(e.delta))}
	if _, err := e.w.Write(header[:]); err != nil {
		return err
	}
	if _, err := WriteUvarint(e.w, e.buf[0]); err != nil {
		return err
	}
	e.buf = e.buf[:0]
	e.inRun = false
	return nil
}

func (e *UnsignedIntRLEv1) flushLiteralsN(count int) error {
	if count == 0 {
		return nil
	}
	header := [1]byte{byte(int8(-count))}
	if _, err := e.w.Write(header[:]); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if _, err := WriteUvarint(e.w, e.buf[i]); err != nil {
			return err
		}
	}
	e.buf = append(e.buf[:0], e.buf[count:]...)
	return nil
}

func (e *UnsignedIntRLEv1) flushLiterals() error {
	return e.flushLiteralsN(len(e.buf))
}

func (e *UnsignedIntRLEv1) EstimatedSize(streamWritten int64) int64 {
	return streamWritten + int64(len(e.buf))
}

func (e *UnsignedIntRLEv1) Finish() error {
	if e.inRun {
		return e.flushRun()
	}
	return e.flushLiterals()
}
