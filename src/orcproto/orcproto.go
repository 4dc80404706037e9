// Package orcproto hand-encodes the protocol-buffer message shapes ORC's
// metadata needs - StripeFooter, Footer, PostScript, Type, Stream,
// ColumnEncoding and ColumnStatistics - using the wire-level primitives in
// google.golang.org/protobuf/encoding/protowire. There is no generated
// .proto schema here; per this writer's scope, only the message shapes
// actually populated are specified, not a general-purpose protobuf schema
// library (see DESIGN.md).
package orcproto

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Stream.Kind values, mirroring ORC's wire enum ordering.
const (
	StreamKindPresent        = 0
	StreamKindData           = 1
	StreamKindLength         = 2
	StreamKindDictionaryData = 3
	StreamKindSecondary      = 5
	StreamKindRowIndex       = 6
	StreamKindBloomFilter    = 7
)

// ColumnEncoding.Kind values.
const (
	EncodingKindDirect     = 0
	EncodingKindDictionary = 1
)

// Type.Kind values.
const (
	TypeKindBoolean   = 0
	TypeKindByte      = 1
	TypeKindShort     = 2
	TypeKindInt       = 3
	TypeKindLong      = 4
	TypeKindFloat     = 5
	TypeKindDouble    = 6
	TypeKindString    = 7
	TypeKindBinary    = 8
	TypeKindTimestamp = 9
	TypeKindList      = 10
	TypeKindMap       = 11
	TypeKindStruct    = 12
	TypeKindUnion     = 13
	TypeKindDecimal   = 14
	TypeKindDate      = 15
)

// CompressionKind values for PostScript.compression.
const (
	CompressionNone   = 0
	CompressionZlib   = 1
	CompressionSnappy = 2
	CompressionLzo    = 3
	CompressionLz4    = 4
	CompressionZstd   = 5
)

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	return appendBytesField(b, num, []byte(v))
}

// Stream builds a Stream message: optional Kind kind = 1, optional uint32
// column = 2, optional uint64 length = 3.
func Stream(kind uint64, column uint64, length uint64) []byte {
	var b []byte
	b = appendVarintField(b, 1, kind)
	b = appendVarintField(b, 2, column)
	b = appendVarintField(b, 3, length)
	return b
}

// ColumnEncoding builds a ColumnEncoding message: optional Kind kind = 1.
func ColumnEncoding(kind uint64) []byte {
	var b []byte
	b = appendVarintField(b, 1, kind)
	return b
}

// StripeFooter builds a StripeFooter message: repeated Stream streams = 1;
// repeated ColumnEncoding columns = 2.
func StripeFooter(streams [][]byte, columnEncodings [][]byte) []byte {
	var b []byte
	for _, s := range streams {
		b = appendBytesField(b, 1, s)
	}
	for _, c := range columnEncodings {
		b = appendBytesField(b, 2, c)
	}
	return b
}

// ColumnStatistics builds a flattened statistics message (this writer does
// not nest IntegerStatistics/DoubleStatistics/StringStatistics sub-messages
// the way real ORC does - it reports the same fields directly on
// ColumnStatistics, a deliberate simplification since the reader side is
// out of scope here):
//
//	uint64 numberOfValues = 1
//	bool hasNull = 2
//	bool hasMinMax = 3
//	sint64 intMin = 4, intMax = 5, intSum = 6
//	double doubleMin = 7, doubleMax = 8, doubleSum = 9
//	string stringMin = 10, stringMax = 11
//	uint64 totalLength = 12
//	uint64 trueCount = 13
func ColumnStatistics(numValues uint64, hasNull, hasMinMax bool, intMin, intMax, intSum int64, doubleMin, doubleMax, doubleSum float64, stringMin, stringMax string, totalLength, trueCount uint64) []byte {
	var b []byte
	b = appendVarintField(b, 1, numValues)
	b = appendVarintField(b, 2, boolToVarint(hasNull))
	b = appendVarintField(b, 3, boolToVarint(hasMinMax))
	b = appendVarintField(b, 4, protowire.EncodeZigZag(intMin))
	b = appendVarintField(b, 5, protowire.EncodeZigZag(intMax))
	b = appendVarintField(b, 6, protowire.EncodeZigZag(intSum))
	b = protowire.AppendTag(b, 7, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(doubleMin))
	b = protowire.AppendTag(b, 8, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(doubleMax))
	b = protowire.AppendTag(b, 9, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(doubleSum))
	b = appendStringField(b, 10, stringMin)
	b = appendStringField(b, 11, stringMax)
	b = appendVarintField(b, 12, totalLength)
	b = appendVarintField(b, 13, trueCount)
	return b
}

func boolToVarint(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// Type builds a Type message: optional Kind kind = 1; repeated uint32
// subtypes = 2; repeated string fieldNames = 3; optional uint32
// maximumLength = 4; optional uint32 precision = 5; optional uint32 scale = 6.
func Type(kind uint64, subtypes []uint32, fieldNames []string, precision, scale uint32) []byte {
	var b []byte
	b = appendVarintField(b, 1, kind)
	for _, s := range subtypes {
		b = appendVarintField(b, 2, uint64(s))
	}
	for _, f := range fieldNames {
		b = appendStringField(b, 3, f)
	}
	b = appendVarintField(b, 5, uint64(precision))
	b = appendVarintField(b, 6, uint64(scale))
	return b
}

// StripeInformation builds a StripeInformation message: optional uint64
// offset = 1; indexLength = 2; dataLength = 3; footerLength = 4;
// numberOfRows = 5.
func StripeInformation(offset, indexLength, dataLength, footerLength, numberOfRows uint64) []byte {
	var b []byte
	b = appendVarintField(b, 1, offset)
	b = appendVarintField(b, 2, indexLength)
	b = appendVarintField(b, 3, dataLength)
	b = appendVarintField(b, 4, footerLength)
	b = appendVarintField(b, 5, numberOfRows)
	return b
}

// UserMetadataItem builds a UserMetadataItem message: optional string
// name = 1; optional bytes value = 2.
func UserMetadataItem(name string, value []byte) []byte {
	var b []byte
	b = appendStringField(b, 1, name)
	b = appendBytesField(b, 2, value)
	return b
}

// Footer builds a Footer message: optional uint64 headerLength = 1;
// contentLength = 2; repeated StripeInformation stripes = 3; repeated Type
// types = 4; repeated UserMetadataItem metadata = 5; optional uint64
// numberOfRows = 6; repeated ColumnStatistics statistics = 7; optional
// uint32 rowIndexStride = 8.
func Footer(headerLength, contentLength uint64, stripes, types, metadata [][]byte, numberOfRows uint64, statistics [][]byte, rowIndexStride uint32) []byte {
	var b []byte
	b = appendVarintField(b, 1, headerLength)
	b = appendVarintField(b, 2, contentLength)
	for _, s := range stripes {
		b = appendBytesField(b, 3, s)
	}
	for _, t := range types {
		b = appendBytesField(b, 4, t)
	}
	for _, m := range metadata {
		b = appendBytesField(b, 5, m)
	}
	b = appendVarintField(b, 6, numberOfRows)
	for _, s := range statistics {
		b = appendBytesField(b, 7, s)
	}
	b = appendVarintField(b, 8, uint64(rowIndexStride))
	return b
}

// PostScript builds a PostScript message: optional uint64 footerLength = 1;
// optional CompressionKind compression = 2; optional uint64
// compressionBlockSize = 3; optional uint64 writerVersion = 4; optional
// string magic = 5.
func PostScript(footerLength uint64, compression uint64, compressionBlockSize uint64, writerVersion uint64, magic string) []byte {
	var b []byte
	b = appendVarintField(b, 1, footerLength)
	b = appendVarintField(b, 2, compression)
	b = appendVarintField(b, 3, compressionBlockSize)
	b = appendVarintField(b, 4, writerVersion)
	b = appendStringField(b, 5, magic)
	return b
}
