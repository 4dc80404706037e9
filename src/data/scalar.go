package data

import (
	"io"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/rle"
	"github.com/kokes/orcwrite/src/schema"
)

// BooleanNode is the data node for schema.KindBoolean: PRESENT + DATA,
// both BooleanRLE. See spec §4.3's type table.
type BooleanNode struct {
	leafBase
	dataStream *compress.Stream
	dataEnc    *rle.BooleanRLE
}

func newBooleanNode(s *schema.Schema, cfg Config) *BooleanNode {
	stream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &BooleanNode{
		leafBase:   newLeafBase(s, cfg),
		dataStream: stream,
		dataEnc:    rle.NewBooleanRLE(stream),
	}
}

// Write appends one row: v == nil writes a null (PRESENT=false only).
func (n *BooleanNode) Write(v *bool) error {
	n.recordPresence(v != nil)
	if v == nil {
		return nil
	}
	n.stat.AddBool(*v)
	return n.dataEnc.Write(*v)
}

func (n *BooleanNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
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
	return infos, nil
}

func (n *BooleanNode) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.dataStream.BytesWritten()
}

func (n *BooleanNode) Reset() {
	n.resetBase()
	n.dataStream.Reset()
}

// ByteNode is the data node for schema.KindByte: PRESENT + DATA, both
// ByteRLE (the byte's own value needs no further framing beyond ByteRLE).
type ByteNode struct {
	leafBase
	dataStream *compress.Stream
	dataEnc    *rle.ByteRLE
}

func newByteNode(s *schema.Schema, cfg Config) *ByteNode {
	stream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &ByteNode{
		leafBase:   newLeafBase(s, cfg),
		dataStream: stream,
		dataEnc:    rle.NewByteRLE(stream),
	}
}

func (n *ByteNode) Write(v *int8) error {
	n.recordPresence(v != nil)
	if v == nil {
		return nil
	}
	n.stat.AddInt(int64(*v))
	return n.dataEnc.Write(byte(*v))
}

func (n *ByteNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
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
	return infos, nil
}

func (n *ByteNode) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.dataStream.BytesWritten()
}

func (n *ByteNode) Reset() {
	n.resetBase()
	n.dataStream.Reset()
}

// LongNode is the data node shared by Short, Int, Long and Date: all four
// carry a 64-bit signed value and encode DATA with SignedIntRLEv1 - the
// logical width only matters for range validation at the caller, not for
// the wire encoding. Date values are days since epoch, stored as the
// signed long they are (spec §3).
type LongNode struct {
	leafBase
	dataStream *compress.Stream
	dataEnc    *rle.SignedIntRLEv1
}

func newLongNode(s *schema.Schema, cfg Config) *LongNode {
	stream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &LongNode{
		leafBase:   newLeafBase(s, cfg),
		dataStream: stream,
		dataEnc:    rle.NewSignedIntRLEv1(stream),
	}
}

func (n *LongNode) Write(v *int64) error {
	n.recordPresence(v != nil)
	if v == nil {
		return nil
	}
	n.stat.AddInt(*v)
	return n.dataEnc.Write(*v)
}

func (n *LongNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
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
	return infos, nil
}

func (n *LongNode) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.dataStream.BytesWritten()
}

func (n *LongNode) Reset() {
	n.resetBase()
	n.dataStream.Reset()
}

// FloatNode is the data node for schema.KindFloat: PRESENT + raw LE f32 DATA.
type FloatNode struct {
	leafBase
	dataStream *compress.Stream
	dataEnc    *rle.FloatWriter
}

func newFloatNode(s *schema.Schema, cfg Config) *FloatNode {
	stream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &FloatNode{
		leafBase:   newLeafBase(s, cfg),
		dataStream: stream,
		dataEnc:    rle.NewFloatWriter(stream),
	}
}

func (n *FloatNode) Write(v *float32) error {
	n.recordPresence(v != nil)
	if v == nil {
		return nil
	}
	n.stat.AddDouble(float64(*v))
	return n.dataEnc.Write(*v)
}

func (n *FloatNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
	var infos []StreamInfo
	if err := n.writePresentStream(w, &infos); err != nil {
		return nil, err
	}
	dn, err := n.dataStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamData, ColumnID: n.schema.ColumnID, Length: dn})
	return infos, nil
}

func (n *FloatNode) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.dataStream.BytesWritten()
}

func (n *FloatNode) Reset() {
	n.resetBase()
	n.dataStream.Reset()
}

// DoubleNode is the data node for schema.KindDouble: PRESENT + raw LE f64 DATA.
type DoubleNode struct {
	leafBase
	dataStream *compress.Stream
	dataEnc    *rle.DoubleWriter
}

func newDoubleNode(s *schema.Schema, cfg Config) *DoubleNode {
	stream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &DoubleNode{
		leafBase:   newLeafBase(s, cfg),
		dataStream: stream,
		dataEnc:    rle.NewDoubleWriter(stream),
	}
}

func (n *DoubleNode) Write(v *float64) error {
	n.recordPresence(v != nil)
	if v == nil {
		return nil
	}
	n.stat.AddDouble(*v)
	return n.dataEnc.Write(*v)
}

func (n *DoubleNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
	var infos []StreamInfo
	if err := n.writePresentStream(w, &infos); err != nil {
		return nil, err
	}
	dn, err := n.dataStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamData, ColumnID: n.schema.ColumnID, Length: dn})
	return infos, nil
}

func (n *DoubleNode) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.dataStream.BytesWritten()
}

func (n *DoubleNode) Reset() {
	n.resetBase()
	n.dataStream.Reset()
}
