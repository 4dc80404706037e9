package orcfile

import (
	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/orcproto"
	"github.com/kokes/orcwrite/src/schema"
	"github.com/kokes/orcwrite/src/stats"
)

// buildTypeMessages walks root in the same depth-first preorder as
// schema.Assign, producing one orcproto.Type message per column - the
// FileFooter's "preorder types with child-id lists and field names"
// (spec §4.5).
func buildTypeMessages(root *schema.Schema) [][]byte {
	n := countColumns(root)
	msgs := make([][]byte, n)
	schema.Walk(root, func(s *schema.Schema) {
		msgs[s.ColumnID] = orcproto.Type(
			uint64(schemaKindToProto(s.Kind)),
			subtypeIDs(s),
			fieldNames(s),
			uint32(s.Precision),
			uint32(s.Scale),
		)
	})
	return msgs
}

func countColumns(root *schema.Schema) int {
	n := 0
	schema.Walk(root, func(*schema.Schema) { n++ })
	return n
}

func subtypeIDs(s *schema.Schema) []uint32 {
	switch s.Kind {
	case schema.KindList:
		return []uint32{uint32(s.Elem.ColumnID)}
	case schema.KindMap:
		return []uint32{uint32(s.Key.ColumnID), uint32(s.Value.ColumnID)}
	case schema.KindStruct:
		ids := make([]uint32, len(s.Fields))
		for i, f := range s.Fields {
			ids[i] = uint32(f.Type.ColumnID)
		}
		return ids
	case schema.KindUnion:
		ids := make([]uint32, len(s.Variants))
		for i, v := range s.Variants {
			ids[i] = uint32(v.ColumnID)
		}
		return ids
	default:
		return nil
	}
}

func fieldNames(s *schema.Schema) []string {
	if s.Kind != schema.KindStruct {
		return nil
	}
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func schemaKindToProto(k schema.Kind) int {
	switch k {
	case schema.KindBoolean:
		return orcproto.TypeKindBoolean
	case schema.KindByte:
		return orcproto.TypeKindByte
	case schema.KindShort:
		return orcproto.TypeKindShort
	case schema.KindInt:
		return orcproto.TypeKindInt
	case schema.KindLong:
		return orcproto.TypeKindLong
	case schema.KindFloat:
		return orcproto.TypeKindFloat
	case schema.KindDouble:
		return orcproto.TypeKindDouble
	case schema.KindString:
		return orcproto.TypeKindString
	case schema.KindBinary:
		return orcproto.TypeKindBinary
	case schema.KindDate:
		return orcproto.TypeKindDate
	case schema.KindTimestamp:
		return orcproto.TypeKindTimestamp
	case schema.KindDecimal:
		return orcproto.TypeKindDecimal
	case schema.KindList:
		return orcproto.TypeKindList
	case schema.KindMap:
		return orcproto.TypeKindMap
	case schema.KindStruct:
		return orcproto.TypeKindStruct
	case schema.KindUnion:
		return orcproto.TypeKindUnion
	default:
		return orcproto.TypeKindStruct
	}
}

func compressionToProto(k compress.Kind) int {
	switch k {
	case compress.None:
		return orcproto.CompressionNone
	case compress.Zlib:
		return orcproto.CompressionZlib
	case compress.Snappy:
		return orcproto.CompressionSnappy
	case compress.Lzo:
		return orcproto.CompressionLzo
	case compress.Lz4:
		return orcproto.CompressionLz4
	case compress.Zstd:
		return orcproto.CompressionZstd
	default:
		return orcproto.CompressionNone
	}
}

func buildStatMessages(all []stats.Statistics) [][]byte {
	msgs := make([][]byte, len(all))
	for i, s := range all {
		msgs[i] = orcproto.ColumnStatistics(
			uint64(s.NumValues),
			s.NumNulls > 0,
			s.HasMinMax,
			s.IntMin, s.IntMax, s.IntSum,
			s.DoubleMin, s.DoubleMax, s.DoubleSum,
			s.StringMin, s.StringMax,
			uint64(s.TotalLength),
			uint64(s.TrueCount),
		)
	}
	return msgs
}
