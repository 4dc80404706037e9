// Package stripe drives a single stripe's lifecycle: data-stream
// serialization, stripe-footer assembly and node reset, closing over a
// column data tree built by package data. See spec §4.4.
package stripe

import (
	"io"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/data"
	"github.com/kokes/orcwrite/src/orcproto"
)

// Descriptor records one flushed stripe's placement and shape within the
// file, the way the FileFooter's stripe list needs it.
type Descriptor struct {
	Offset       int64
	IndexLength  int64
	DataLength   int64
	FooterLength int64
	RowCount     int64
}

// Stripe accumulates writes against a data tree until it is flushed.
type Stripe struct {
	root        data.Node
	rowCount    int64
	compression compress.Kind
	blockSize   int
}

// New wraps root (typically a *data.StructNode, the schema's root) as a
// fresh stripe accumulator.
func New(root data.Node, compression compress.Kind, blockSize int) *Stripe {
	return &Stripe{root: root, compression: compression, blockSize: blockSize}
}

// AddRows records rows committed to the data tree since the last flush -
// the caller is responsible for having already written the corresponding
// values to every leaf handle (see orcfile.Writer.WriteBatch).
func (s *Stripe) AddRows(n int64) {
	s.rowCount += n
}

// RowCount returns the rows accumulated since the last flush.
func (s *Stripe) RowCount() int64 { return s.rowCount }

// EstimatedSize reports the data tree's buffered uncompressed byte count,
// used by the caller to decide when to flush (spec §9's "stripe size
// accounting" note: this over-estimates slightly because compressed size
// is unknown until block boundaries, which is acceptable).
func (s *Stripe) EstimatedSize() int64 {
	return s.root.EstimatedSize()
}

// countingWriter tracks the number of bytes written through it, so Flush
// can measure each phase's exact length without a second pass.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Flush serializes the stripe in three phases - index (stubbed), data,
// footer - appends the stripe's bytes to w at its current offset, resets
// the data tree, and returns the stripe's Descriptor.
//
// Row-index streams are never emitted: indexes are an explicit open item
// (spec §9) - this core contract is "zero bytes, no StreamInfo" when
// indexes are disabled, which is unconditionally the case here.
func (s *Stripe) Flush(w io.Writer, offset int64) (Descriptor, error) {
	cw := &countingWriter{w: w}

	// Index phase: stubbed, zero bytes.
	indexLength := int64(0)

	dataStart := cw.n
	streamInfos, err := s.root.WriteDataStreams(cw)
	if err != nil {
		return Descriptor{}, err
	}
	dataLength := cw.n - dataStart

	footerStart := cw.n
	if err := s.writeFooter(cw, streamInfos); err != nil {
		return Descriptor{}, err
	}
	footerLength := cw.n - footerStart

	desc := Descriptor{
		Offset:       offset,
		IndexLength:  indexLength,
		DataLength:   dataLength,
		FooterLength: footerLength,
		RowCount:     s.rowCount,
	}

	s.root.Reset()
	s.rowCount = 0
	return desc, nil
}

func (s *Stripe) writeFooter(w io.Writer, streamInfos []data.StreamInfo) error {
	streamMsgs := make([][]byte, len(streamInfos))
	for i, si := range streamInfos {
		streamMsgs[i] = orcproto.Stream(uint64(streamKindToProto(si.Kind)), uint64(si.ColumnID), uint64(si.Length))
	}

	var encodings []data.ColumnEncoding
	s.root.ColumnEncodings(&encodings)
	encodingMsgs := make([][]byte, len(encodings))
	for i, e := range encodings {
		encodingMsgs[i] = orcproto.ColumnEncoding(uint64(e.Encoding))
	}

	footer := orcproto.StripeFooter(streamMsgs, encodingMsgs)

	stream := compress.NewStream(s.compression, s.blockSize)
	if _, err := stream.Write(footer); err != nil {
		return err
	}
	_, err := stream.Finish(w)
	return err
}

func streamKindToProto(k data.StreamKind) int {
	switch k {
	case data.StreamPresent:
		return orcproto.StreamKindPresent
	case data.StreamData:
		return orcproto.StreamKindData
	case data.StreamLength:
		return orcproto.StreamKindLength
	case data.StreamSecondary:
		return orcproto.StreamKindSecondary
	case data.StreamDictionaryData:
		return orcproto.StreamKindDictionaryData
	case data.StreamRowIndex:
		return orcproto.StreamKindRowIndex
	case data.StreamBloomFilter:
		return orcproto.StreamKindBloomFilter
	default:
		return orcproto.StreamKindData
	}
}
