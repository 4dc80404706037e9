// Package data implements the per-type column data tree: one node per
// schema column, each owning its encoders, its PRESENT bitmap staging
// buffer and its statistics accumulator. The tree is isomorphic to a
// schema.Schema and its column ids are fixed at construction (see
// schema.Assign).
package data

import (
	"fmt"
	"io"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/rle"
	"github.com/kokes/orcwrite/src/schema"
	"github.com/kokes/orcwrite/src/stats"
)

// StreamKind identifies the role a stream plays within a column. Only
// PRESENT, DATA, LENGTH and SECONDARY are produced by this writer;
// DICTIONARY_DATA (no node uses dictionary encoding), ROW_INDEX and
// BLOOM_FILTER are declared for completeness but never emitted.
type StreamKind uint8

const (
	StreamPresent StreamKind = iota
	StreamData
	StreamLength
	StreamSecondary
	StreamDictionaryData
	StreamRowIndex
	StreamBloomFilter
)

func (k StreamKind) String() string {
	return []string{"present", "data", "length", "secondary", "dictionary_data", "row_index", "bloom_filter"}[k]
}

// StreamInfo describes one emitted stream: its kind, owning column and
// on-disk byte length, in the order streams were written to the stripe.
type StreamInfo struct {
	Kind     StreamKind
	ColumnID int
	Length   int64
}

// Encoding is the per-column encoding reported in a stripe footer. This
// core only ever emits Direct encoding (see spec §4.3): dictionary
// encoding is a permitted but unimplemented extension.
type Encoding uint8

const (
	EncodingDirect Encoding = iota
	EncodingDictionary
)

func (e Encoding) String() string {
	return []string{"direct", "dictionary"}[e]
}

// ColumnEncoding pairs a column id with its reported Encoding.
type ColumnEncoding struct {
	ColumnID int
	Encoding Encoding
}

// Config carries the writer-wide settings every node needs to build its
// compression streams. It is read-only for the node tree's lifetime; no
// node mutates it.
type Config struct {
	Compression compress.Kind
	BlockSize   int
}

// Node is the common capability set every column data node implements,
// regardless of schema variant. See spec §4.3.
type Node interface {
	ColumnID() int
	SchemaNode() *schema.Schema
	// WriteDataStreams serializes this node's streams (and, for composite
	// nodes, its children's) to w in column-id preorder, appending a
	// StreamInfo per stream actually written.
	WriteDataStreams(w io.Writer) ([]StreamInfo, error)
	// ColumnEncodings appends this node's (and its children's) reported
	// encoding, in column-id preorder.
	ColumnEncodings(out *[]ColumnEncoding)
	// Statistics appends this node's (and its children's) accumulated
	// Statistics, in column-id preorder.
	Statistics(out *[]*stats.Statistics)
	// EstimatedSize sums the uncompressed bytes this node's encoders have
	// handed to their streams, one byte per eight PRESENT bits, and its
	// children's estimates. Values still held in an RLE encoder's run or
	// literal buffer are not counted.
	EstimatedSize() int64
	// VerifyRowCount checks this node accumulated exactly expected values
	// since the last Reset; a mismatch is a fatal usage error (see spec §7).
	VerifyRowCount(expected int64)
	// Reset drops accumulated stats and clears encoders for the next stripe.
	Reset()
}

// New builds a fresh data tree isomorphic to s, dispatching on schema.Kind.
// s must already have column ids assigned via schema.Assign.
func New(s *schema.Schema, cfg Config) Node {
	switch s.Kind {
	case schema.KindBoolean:
		return newBooleanNode(s, cfg)
	case schema.KindByte:
		return newByteNode(s, cfg)
	case schema.KindShort, schema.KindInt, schema.KindLong, schema.KindDate:
		return newLongNode(s, cfg)
	case schema.KindFloat:
		return newFloatNode(s, cfg)
	case schema.KindDouble:
		return newDoubleNode(s, cfg)
	case schema.KindString, schema.KindBinary:
		return newStringNode(s, cfg)
	case schema.KindTimestamp:
		return newTimestampNode(s, cfg)
	case schema.KindDecimal:
		return newDecimal64Node(s, cfg)
	case schema.KindList:
		return newListNode(s, cfg)
	case schema.KindMap:
		return newMapNode(s, cfg)
	case schema.KindStruct:
		return newStructNode(s, cfg)
	case schema.KindUnion:
		return newUnionNode(s, cfg)
	default:
		panic(fmt.Sprintf("data: unknown schema kind: %v", s.Kind))
	}
}

// leafBase is embedded by every data node, leaf and composite alike, and
// owns the PRESENT staging buffer plus row-count bookkeeping shared by all
// of them.
// PRESENT bits are buffered uncompressed (not streamed incrementally)
// because whether the stream is emitted at all depends on whether any null
// was seen in the whole stripe (spec §4.3's PRESENT-omission rule), which
// is only known at flush time.
type leafBase struct {
	schema *schema.Schema
	cfg    Config

	present  []bool
	numNulls int64

	stat *stats.Statistics
}

func newLeafBase(s *schema.Schema, cfg Config) leafBase {
	return leafBase{schema: s, cfg: cfg, stat: stats.New(s.Kind)}
}

func (b *leafBase) ColumnID() int             { return b.schema.ColumnID }
func (b *leafBase) SchemaNode() *schema.Schema { return b.schema }

// numPresent returns the count of non-null rows accumulated so far - the
// value a Struct forwards to its children when verifying their row counts
// (spec §4.3, §9's "Struct null row counting" decision).
func (b *leafBase) numPresent() int64 {
	return int64(len(b.present)) - b.numNulls
}

func (b *leafBase) recordPresence(present bool) {
	b.present = append(b.present, present)
	if !present {
		b.numNulls++
		b.stat.AddNull()
	}
}

func (b *leafBase) VerifyRowCount(expected int64) {
	if int64(len(b.present)) != expected {
		panic(fmt.Sprintf("data: column %d (%v) accumulated %d values, expected %d", b.schema.ColumnID, b.schema.Kind, len(b.present), expected))
	}
}

func (b *leafBase) Statistics(out *[]*stats.Statistics) {
	*out = append(*out, b.stat)
}

func (b *leafBase) ColumnEncodings(out *[]ColumnEncoding) {
	*out = append(*out, ColumnEncoding{ColumnID: b.schema.ColumnID, Encoding: EncodingDirect})
}

func (b *leafBase) resetBase() {
	b.present = b.present[:0]
	b.numNulls = 0
	b.stat.Reset()
}

// writePresentStream encodes and writes the PRESENT stream if and only if
// at least one null was recorded, appending its StreamInfo to infos.
func (b *leafBase) writePresentStream(w io.Writer, infos *[]StreamInfo) error {
	if b.numNulls == 0 {
		return nil
	}
	stream := compress.NewStream(b.cfg.Compression, b.cfg.BlockSize)
	enc := rle.NewBooleanRLE(stream)
	for _, v := range b.present {
		if err := enc.Write(v); err != nil {
			return err
		}
	}
	if err := enc.Finish(); err != nil {
		return err
	}
	n, err := stream.Finish(w)
	if err != nil {
		return err
	}
	*infos = append(*infos, StreamInfo{Kind: StreamPresent, ColumnID: b.schema.ColumnID, Length: n})
	return nil
}

// estimatedPresentSize is the PRESENT buffer's contribution to
// EstimatedSize: a bit per accumulated row, rounded up to whole bytes.
func (b *leafBase) estimatedPresentSize() int64 {
	return int64((len(b.present) + 7) / 8)
}
