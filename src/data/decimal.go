package data

import (
	"fmt"
	"io"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/rle"
	"github.com/kokes/orcwrite/src/schema"
)

// Decimal64Node is the data node for schema.KindDecimal with precision <=
// 18: PRESENT, DATA (a signed varint of the unscaled value, written
// directly with no run-length framing) and SECONDARY (SignedIntRLEv1 of the
// scale, once per present row - an ORC v1 quirk where the same constant
// value repeats for every row). See spec §4.3.
type Decimal64Node struct {
	leafBase
	dataStream  *compress.Stream
	scaleStream *compress.Stream
	scaleEnc    *rle.SignedIntRLEv1

	precision int
	scale     int
	maxAbs    int64
}

func newDecimal64Node(s *schema.Schema, cfg Config) *Decimal64Node {
	scaleStream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &Decimal64Node{
		leafBase:    newLeafBase(s, cfg),
		dataStream:  compress.NewStream(cfg.Compression, cfg.BlockSize),
		scaleStream: scaleStream,
		scaleEnc:    rle.NewSignedIntRLEv1(scaleStream),
		precision:   s.Precision,
		scale:       s.Scale,
		maxAbs:      pow10(s.Precision) - 1,
	}
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// Write appends one row: v == nil writes a null. v is the decimal's
// unscaled value (the actual value is v * 10^-scale). A value outside the
// Decimal(precision, scale) envelope returns an error and records nothing.
func (n *Decimal64Node) Write(v *int64) error {
	if v != nil && (*v > n.maxAbs || *v < -n.maxAbs) {
		return fmt.Errorf("data: column %d decimal value %d exceeds Decimal(%d,%d) envelope", n.schema.ColumnID, *v, n.precision, n.scale)
	}
	n.recordPresence(v != nil)
	if v == nil {
		return nil
	}
	n.stat.AddInt(*v)
	if _, err := rle.WriteVarint(n.dataStream, *v); err != nil {
		return err
	}
	return n.scaleEnc.Write(int64(n.scale))
}

func (n *Decimal64Node) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
	var infos []StreamInfo
	if err := n.writePresentStream(w, &infos); err != nil {
		return nil, err
	}
	dn, err := n.dataStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamData, ColumnID: n.schema.ColumnID, Length: dn})

	if err := n.scaleEnc.Finish(); err != nil {
		return nil, err
	}
	sn, err := n.scaleStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamSecondary, ColumnID: n.schema.ColumnID, Length: sn})
	return infos, nil
}

func (n *Decimal64Node) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.dataStream.BytesWritten() + n.scaleStream.BytesWritten()
}

func (n *Decimal64Node) Reset() {
	n.resetBase()
	n.dataStream.Reset()
	n.scaleStream.Reset()
}
