package data

import (
	"io"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/rle"
	"github.com/kokes/orcwrite/src/schema"
	"github.com/kokes/orcwrite/src/stats"
)

// StructNode is the data node for schema.KindStruct: a PRESENT stream plus
// its ordered children. A false present bit suppresses writes to every
// descendant for that row (spec §9's adopted contract); VerifyRowCount
// forwards num_present, not num_values, to children.
type StructNode struct {
	leafBase
	children []Node
}

func newStructNode(s *schema.Schema, cfg Config) *StructNode {
	children := make([]Node, len(s.Fields))
	for i, f := range s.Fields {
		children[i] = New(f.Type, cfg)
	}
	return &StructNode{leafBase: newLeafBase(s, cfg), children: children}
}

// Write appends one row's presence bit. Callers must then write exactly one
// value to each child for a present row, or nothing at all for an absent one.
func (n *StructNode) Write(present bool) error {
	n.recordPresence(present)
	if present {
		n.stat.AddPresence()
	}
	return nil
}

// Child returns the i-th field's data node, in declaration order.
func (n *StructNode) Child(i int) Node { return n.children[i] }

func (n *StructNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
	var infos []StreamInfo
	if err := n.writePresentStream(w, &infos); err != nil {
		return nil, err
	}
	for _, c := range n.children {
		childInfos, err := c.WriteDataStreams(w)
		if err != nil {
			return nil, err
		}
		infos = append(infos, childInfos...)
	}
	return infos, nil
}

func (n *StructNode) ColumnEncodings(out *[]ColumnEncoding) {
	n.leafBase.ColumnEncodings(out)
	for _, c := range n.children {
		c.ColumnEncodings(out)
	}
}

func (n *StructNode) Statistics(out *[]*stats.Statistics) {
	n.leafBase.Statistics(out)
	for _, c := range n.children {
		c.Statistics(out)
	}
}

func (n *StructNode) EstimatedSize() int64 {
	total := n.estimatedPresentSize()
	for _, c := range n.children {
		total += c.EstimatedSize()
	}
	return total
}

func (n *StructNode) VerifyRowCount(expected int64) {
	n.leafBase.VerifyRowCount(expected)
	present := n.numPresent()
	for _, c := range n.children {
		c.VerifyRowCount(present)
	}
}

func (n *StructNode) Reset() {
	n.resetBase()
	for _, c := range n.children {
		c.Reset()
	}
}

// ListNode is the data node for schema.KindList: PRESENT, LENGTH
// (UnsignedIntRLEv1) and exactly one child. A null list calls WriteNull,
// emitting only a PRESENT=false bit; the child must receive exactly the
// sum of all written lengths by stripe close.
type ListNode struct {
	leafBase
	lengthStream *compress.Stream
	lengthEnc    *rle.UnsignedIntRLEv1
	elem         Node
	sumLengths   int64
}

func newListNode(s *schema.Schema, cfg Config) *ListNode {
	lengthStream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &ListNode{
		leafBase:     newLeafBase(s, cfg),
		lengthStream: lengthStream,
		lengthEnc:    rle.NewUnsignedIntRLEv1(lengthStream),
		elem:         New(s.Elem, cfg),
	}
}

// Write appends one non-null list of length ln; the child node must then
// receive exactly ln values before the next Write/WriteNull call.
func (n *ListNode) Write(ln uint64) error {
	n.recordPresence(true)
	n.stat.AddPresence()
	n.sumLengths += int64(ln)
	return n.lengthEnc.Write(ln)
}

// WriteNull appends a null list: PRESENT=false only, no LENGTH entry.
func (n *ListNode) WriteNull() error {
	n.recordPresence(false)
	return nil
}

// Elem returns the list's single child data node.
func (n *ListNode) Elem() Node { return n.elem }

func (n *ListNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
	var infos []StreamInfo
	if err := n.writePresentStream(w, &infos); err != nil {
		return nil, err
	}
	if err := n.lengthEnc.Finish(); err != nil {
		return nil, err
	}
	ln, err := n.lengthStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamLength, ColumnID: n.schema.ColumnID, Length: ln})

	childInfos, err := n.elem.WriteDataStreams(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, childInfos...)
	return infos, nil
}

func (n *ListNode) ColumnEncodings(out *[]ColumnEncoding) {
	n.leafBase.ColumnEncodings(out)
	n.elem.ColumnEncodings(out)
}

func (n *ListNode) Statistics(out *[]*stats.Statistics) {
	n.leafBase.Statistics(out)
	n.elem.Statistics(out)
}

func (n *ListNode) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.lengthStream.BytesWritten() + n.elem.EstimatedSize()
}

func (n *ListNode) VerifyRowCount(expected int64) {
	n.leafBase.VerifyRowCount(expected)
	n.elem.VerifyRowCount(n.sumLengths)
}

func (n *ListNode) Reset() {
	n.resetBase()
	n.lengthStream.Reset()
	n.sumLengths = 0
	n.elem.Reset()
}

// MapNode is the data node for schema.KindMap: PRESENT, LENGTH and two
// children (key, value), the same lengths driving both - as List, but with
// a pair of children instead of one.
type MapNode struct {
	leafBase
	lengthStream *compress.Stream
	lengthEnc    *rle.UnsignedIntRLEv1
	key, value   Node
	sumLengths   int64
}

func newMapNode(s *schema.Schema, cfg Config) *MapNode {
	lengthStream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &MapNode{
		leafBase:     newLeafBase(s, cfg),
		lengthStream: lengthStream,
		lengthEnc:    rle.NewUnsignedIntRLEv1(lengthStream),
		key:          New(s.Key, cfg),
		value:        New(s.Value, cfg),
	}
}

// Write appends one non-null map with ln entries; the key and value
// children must each then receive exactly ln values.
func (n *MapNode) Write(ln uint64) error {
	n.recordPresence(true)
	n.stat.AddPresence()
	n.sumLengths += int64(ln)
	return n.lengthEnc.Write(ln)
}

// WriteNull appends a null map: PRESENT=false only, no LENGTH entry.
func (n *MapNode) WriteNull() error {
	n.recordPresence(false)
	return nil
}

func (n *MapNode) Key() Node   { return n.key }
func (n *MapNode) Value() Node { return n.value }

func (n *MapNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
	var infos []StreamInfo
	if err := n.writePresentStream(w, &infos); err != nil {
		return nil, err
	}
	if err := n.lengthEnc.Finish(); err != nil {
		return nil, err
	}
	ln, err := n.lengthStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamLength, ColumnID: n.schema.ColumnID, Length: ln})

	keyInfos, err := n.key.WriteDataStreams(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, keyInfos...)

	valueInfos, err := n.value.WriteDataStreams(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, valueInfos...)
	return infos, nil
}

func (n *MapNode) ColumnEncodings(out *[]ColumnEncoding) {
	n.leafBase.ColumnEncodings(out)
	n.key.ColumnEncodings(out)
	n.value.ColumnEncodings(out)
}

func (n *MapNode) Statistics(out *[]*stats.Statistics) {
	n.leafBase.Statistics(out)
	n.key.Statistics(out)
	n.value.Statistics(out)
}

func (n *MapNode) EstimatedSize() int64 {
	return n.estimatedPresentSize() + n.lengthStream.BytesWritten() + n.key.EstimatedSize() + n.value.EstimatedSize()
}

func (n *MapNode) VerifyRowCount(expected int64) {
	n.leafBase.VerifyRowCount(expected)
	n.key.VerifyRowCount(n.sumLengths)
	n.value.VerifyRowCount(n.sumLengths)
}

func (n *MapNode) Reset() {
	n.resetBase()
	n.lengthStream.Reset()
	n.sumLengths = 0
	n.key.Reset()
	n.value.Reset()
}

// UnionNode is the data node for schema.KindUnion: PRESENT, a DATA stream
// of ByteRLE variant tags, and one child per variant. Only the selected
// variant receives a write for a given row; the others are untouched,
// mirroring a Struct row with a false present bit on every non-selected
// child.
type UnionNode struct {
	leafBase
	tagStream *compress.Stream
	tagEnc    *rle.ByteRLE
	variants  []Node
	tagCounts []int64
}

func newUnionNode(s *schema.Schema, cfg Config) *UnionNode {
	variants := make([]Node, len(s.Variants))
	for i, v := range s.Variants {
		variants[i] = New(v, cfg)
	}
	tagStream := compress.NewStream(cfg.Compression, cfg.BlockSize)
	return &UnionNode{
		leafBase:  newLeafBase(s, cfg),
		tagStream: tagStream,
		tagEnc:    rle.NewByteRLE(tagStream),
		variants:  variants,
		tagCounts: make([]int64, len(variants)),
	}
}

// Write selects variant tag for this row; the caller must then write
// exactly one value to Variant(tag) before the next call.
func (n *UnionNode) Write(tag int) error {
	n.recordPresence(true)
	n.stat.AddPresence()
	n.tagCounts[tag]++
	return n.tagEnc.Write(byte(tag))
}

// WriteNull appends a null union value: PRESENT=false only, no tag.
func (n *UnionNode) WriteNull() error {
	n.recordPresence(false)
	return nil
}

// Variant returns the i-th variant's data node.
func (n *UnionNode) Variant(i int) Node { return n.variants[i] }

func (n *UnionNode) WriteDataStreams(w io.Writer) ([]StreamInfo, error) {
	var infos []StreamInfo
	if err := n.writePresentStream(w, &infos); err != nil {
		return nil, err
	}
	if err := n.tagEnc.Finish(); err != nil {
		return nil, err
	}
	tn, err := n.tagStream.Finish(w)
	if err != nil {
		return nil, err
	}
	infos = append(infos, StreamInfo{Kind: StreamData, ColumnID: n.schema.ColumnID, Length: tn})

	for _, v := range n.variants {
		childInfos, err := v.WriteDataStreams(w)
		if err != nil {
			return nil, err
		}
		infos = append(infos, childInfos...)
	}
	return infos, nil
}

func (n *UnionNode) ColumnEncodings(out *[]ColumnEncoding) {
	n.leafBase.ColumnEncodings(out)
	for _, v := range n.variants {
		v.ColumnEncodings(out)
	}
}

func (n *UnionNode) Statistics(out *[]*stats.Statistics) {
	n.leafBase.Statistics(out)
	for _, v := range n.variants {
		v.Statistics(out)
	}
}

func (n *UnionNode) EstimatedSize() int64 {
	total := n.estimatedPresentSize() + n.tagStream.BytesWritten()
	for _, v := range n.variants {
		total += v.EstimatedSize()
	}
	return total
}

func (n *UnionNode) VerifyRowCount(expected int64) {
	n.leafBase.VerifyRowCount(expected)
	for i, v := range n.variants {
		v.VerifyRowCount(n.tagCounts[i])
	}
}

func (n *UnionNode) Reset() {
	n.resetBase()
	n.tagStream.Reset()
	for i := range n.tagCounts {
		n.tagCounts[i] = 0
	}
	for _, v := range n.variants {
		v.Reset()
	}
}
