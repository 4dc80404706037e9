package compress

import (
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// DefaultBlockSize is the block size ORC writers use unless configured otherwise.
const DefaultBlockSize = 64 * 1024

var errLzoUnsupported = errors.New("compress: LZO has no writer implementation in this module; pick NONE, ZLIB, SNAPPY, LZ4 or ZSTD")

// Stream accumulates an ORC stream's bytes, framing them into compressed (or
// raw, if compression didn't help) blocks as the uncompressed buffer crosses
// blockSize. It holds its framed output entirely in memory until Finish is
// called, because a stripe's streams are only written to the real file sink
// once their final byte lengths are known (see stripe.Stripe).
type Stream struct {
	kind      Kind
	blockSize int

	raw []byte       // uncompressed bytes not yet framed into a block
	out bytes.Buffer // framed output accumulated so far

	written int64 // total uncompressed bytes ever handed to Write

	zstdEnc *zstd.Encoder // reused across blocks; zstd.NewWriter is not cheap
}

// NewStream creates a Stream for the given codec. blockSize <= 0 selects DefaultBlockSize.
func NewStream(kind Kind, blockSize int) *Stream {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Stream{kind: kind, blockSize: blockSize}
}

// Write buffers p, emitting complete blocks as the staging buffer saturates.
// It implements io.Writer so encoders (rle.ByteRLE, rle.SignedIntRLEv1, ...)
// can treat a Stream as their sink.
func (s *Stream) Write(p []byte) (int, error) {
	s.written += int64(len(p))
	if s.kind == None {
		return s.out.Write(p)
	}
	s.raw = append(s.raw, p...)
	for len(s.raw) >= s.blockSize {
		if err := s.emitBlock(s.raw[:s.blockSize]); err != nil {
			return 0, err
		}
		s.raw = s.raw[s.blockSize:]
	}
	return len(p), nil
}

// BytesWritten returns the uncompressed byte count handed to Write so far -
// used by the data nodes to estimate the stripe's accumulated size without paying
// for an actual compression pass.
func (s *Stream) BytesWritten() int64 {
	return s.written
}

func (s *Stream) emitBlock(block []byte) error {
	compressed, err := s.compress(block)
	if err != nil {
		return err
	}
	if len(compressed) < len(block) {
		writeBlockHeader(&s.out, len(compressed), true)
		s.out.Write(compressed)
	} else {
		writeBlockHeader(&s.out, len(block), false)
		s.out.Write(block)
	}
	return nil
}

// writeBlockHeader appends ORC's 3-byte little-endian block header: the low
// bit is 0 when the payload is compressed, 1 when it's the original bytes;
// the remaining 23 bits carry the payload length.
func writeBlockHeader(w *bytes.Buffer, payloadLen int, compressed bool) {
	h := uint32(payloadLen) << 1
	if !compressed {
		h |= 1
	}
	w.WriteByte(byte(h))
	w.WriteByte(byte(h >> 8))
	w.WriteByte(byte(h >> 16))
}

func (s *Stream) compress(block []byte) ([]byte, error) {
	switch s.kind {
	case Zlib:
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, flate.BestSpeed)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(block); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Snappy:
		return snappy.Encode(nil, block), nil
	case Lz4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(block); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Zstd:
		if s.zstdEnc == nil {
			enc, err := zstd.NewWriter(nil)
			if err != nil {
				return nil, err
			}
			s.zstdEnc = enc
		}
		return s.zstdEnc.EncodeAll(block, nil), nil
	case Lzo:
		return nil, errLzoUnsupported
	default:
		return nil, fmt.Errorf("compress: unhandled kind %v", s.kind)
	}
}

// Finish flushes any partial block and writes the stream's complete framed
// content to sink, returning the number of bytes written (the stream's
// on-disk length, for the stripe's StreamInfo).
func (s *Stream) Finish(sink io.Writer) (int64, error) {
	if s.kind != None && len(s.raw) > 0 {
		if err := s.emitBlock(s.raw); err != nil {
			return 0, err
		}
		s.raw = s.raw[:0]
	}
	n, err := sink.Write(s.out.Bytes())
	return int64(n), err
}

// Reset clears all buffered state so the Stream can be reused for the next stripe.
func (s *Stream) Reset() {
	s.raw = s.raw[:0]
	s.out.Reset()
	s.written = 0
}
