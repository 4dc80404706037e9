package data

import (
	"io"
	"time"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/rle"
	"github.com/kokes/orcwrite/src/schema"
)

// orcEpoch is 2015-01-01 UTC, the epoch ORC timestamps are stored against.
// Using the Unix epoch here instead is the single most common ORC writer
// bug (spec §9's "Timestamp epoch" note) - every second value would be off
// by orcEpochUnix seconds.
var orcEpoch = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

var orcEpochUnix = orcEpoch.Unix()

// TimestampNode is the data node for schema.KindTimestamp: PRESENT, DATA
// (SignedIntRLEv1 seconds since the ORC epoch) and SECONDARY
// (UnsignedIntRLEv1 nanoseconds, trailing-zero compacted). See spec §4.3.
type TimestampNode struct {
	leafBase
	dataStream      *compress.Stream
	dataEnc         *rle.SignedIntRLEv1
	secondaryStream *compress.Stream
	secondaryEnc    *rle.UnsignedIntRLEv1
}

func newTimestampNode(s *schema.Schema, cfg Config) *TimestampNode {
	dataStream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	secondaryStream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &TimestampNode{
		leafBase:        newLeafBase(s, cfg),
		dataStream:      dataStream,
		dataEnc:         rle.NewSignedIntRLEv1(dataStream),
		secondaryStream: secondaryStream,
		secondaryEnc:    rle.NewUnsignedIntRLEv1(secondaryStream),
	}
}

// Write appends one row: v == nil writes a null.
func (n *TimestampNode) Write(v *time.Time) error {
	n.recordPresence(v != nil)
	if v == nil {
		return nil
	}
	u := v.UTC()
	n.stat.AddInt(u.Unix())
	if err := n.dataEnc.Write(u.Unix() - orcEpochUnix); err != nil {
		return err
	}
	return n.secondaryEnc.Write(encodeNanos(uint32(u.Nanosecond())))
}

// encodeNanos applies ORC's trailing-zero nanosecond compaction: the
// decimal value is divided by 10 while it divides evenly, and the shift
// count is packed into the low 3 bits of the result.
func encodeNanos(nanos uint32) uint64 {
	if nanos == 0 {
		return 0
	}
	var zeros uint64
	for nanos%10 == 0 && zeros < 7 {
		nanos /= 10
		zeros++
	}
	return uint64(nanos)<<3 | zeros
}

func (n *TimestampNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
	var infos []StreamInfo
	if err := n.writePresentStream(w, &infos); err != nil {
		return nil, err
	}
	if err := n.dataEnc.Finish(); err != nil {
		return nil, err
	}
	dn, err := n.dataStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamData, ColumnID: n.schema.ColumnID, Length: dn})

	if err := n.secondaryEnc.Finish(); err != nil {
		return nil, err
	}
	sn, err := n.secondaryStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamSecondary, ColumnID: n.schema.ColumnID, Length: sn})
	return infos, nil
}

func (n *TimestampNode) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.dataStream.BytesWritten() + n.secondaryStream.BytesWritten()
}

func (n *TimestampNode) Reset() {
	n.resetBase()
	n.dataStream.Reset()
	n.secondaryStream.Reset()
}
