package orcfile

import (
	"testing"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/orcproto"
	"github.com/kokes/orcwrite/src/schema"
	"github.com/kokes/orcwrite/src/stats"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestBuildTypeMessagesOrderAndSubtypes(t *testing.T) {
	s := schema.Struct(
		schema.Field{Name: "a", Type: schema.Long()},
		schema.Field{Name: "b", Type: schema.List(schema.String())},
	)
	schema.Assign(s)

	msgs := buildTypeMessages(s)
	if len(msgs) != 4 {
		t.Fatalf("expecting 4 type messages (struct, long, list, string), got %d", len(msgs))
	}

	// root (column 0) should carry fieldNames "a","b" and subtypes [1,2].
	b := msgs[0]
	var names []string
	var subtypes []uint32
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			b = b[n:]
			if num == 2 {
				subtypes = append(subtypes, uint32(v))
			}
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			b = b[n:]
			if num == 3 {
				names = append(names, string(v))
			}
		}
	}
	if len(subtypes) != 2 || subtypes[0] != 1 || subtypes[1] != 2 {
		t.Errorf("expecting subtypes [1 2], got %v", subtypes)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expecting field names [a b], got %v", names)
	}
}

func TestBuildStatMessagesRoundTrip(t *testing.T) {
	s := stats.New(schema.KindLong)
	s.AddInt(3)
	s.AddInt(7)

	msgs := buildStatMessages([]stats.Statistics{*s})
	if len(msgs) != 1 {
		t.Fatalf("expecting 1 stat message, got %d", len(msgs))
	}

	b := msgs[0]
	var numValues uint64
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			b = b[n:]
			if num == 1 {
				numValues = v
			}
		case protowire.Fixed64Type:
			_, n := protowire.ConsumeFixed64(b)
			b = b[n:]
		case protowire.BytesType:
			_, n := protowire.ConsumeBytes(b)
			b = b[n:]
		}
	}
	if numValues != 2 {
		t.Errorf("expecting numValues 2, got %d", numValues)
	}
}

func TestCompressionToProtoMapping(t *testing.T) {
	cases := map[compress.Kind]int{
		compress.None:   orcproto.CompressionNone,
		compress.Zlib:   orcproto.CompressionZlib,
		compress.Snappy: orcproto.CompressionSnappy,
	}
	for k, want := range cases {
		if got := compressionToProto(k); got != want {
			t.Errorf("compressionToProto(%v) = %d, want %d", k, got, want)
		}
	}
}
