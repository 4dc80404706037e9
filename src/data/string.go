package data

import (
	"io"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/rle"
	"github.com/kokes/orcwrite/src/schema"
)

// StringNode is the data node shared by String and Binary: PRESENT, DATA
// (concatenated raw bytes, direct encoding) and LENGTH (UnsignedIntRLEv1 of
// per-value byte counts). See spec §4.3's type table.
type StringNode struct {
	leafBase
	dataStream   *compress.Stream
	lengthStream *compress.Stream
	lengthEnc    *rle.UnsignedIntRLEv1
}

func newStringNode(s *schema.Schema, cfg Config) *StringNode {
	lengthStream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &StringNode{
		leafBase:     newLeafBase(s, cfg),
		dataStream:   compress.NewStream(cfg.Compression, cfg.BlockSize),
		lengthStream: lengthStream,
		lengthEnc:    rle.NewUnsignedIntRLEv1(lengthStream),
	}
}

// Write appends one row: v == nil writes a null. Used for both String and
// Binary columns since both carry a []byte payload on the wire.
func (n *StringNode) Write(v []byte) error {
	n.recordPresence(v != nil)
	if v == nil {
		return nil
	}
	n.stat.AddString(string(v))
	if _, err := n.dataStream.Write(v); err != nil {
		return err
	}
	return n.lengthEnc.Write(uint64(len(v)))
}

func (n *StringNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
	var infos []StreamInfo
	if err := n.writePresentStream(w, &infos); err != nil {
		return nil, err
	}
	dn, err := n.dataStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamData, ColumnID: n.schema.ColumnID, Length: dn})

	if err := n.lengthEnc.Finish(); err != nil {
		return nil, err
	}
	ln, err := n.lengthStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamLength, ColumnID: n.schema.ColumnID, Length: ln})
	return infos, nil
}

func (n *StringNode) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.dataStream.BytesWritten() + n.lengthStream.BytesWritten()
}

func (n *StringNode) Reset() {
	n.resetBase()
	n.dataStream.Reset()
	n.lengthStream.Reset()
}
