package orcproto

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestStreamFieldsRoundTrip(t *testing.T) {
	b := Stream(StreamKindData, 3, 128)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			t.Fatalf("failed to consume tag: %v", b)
		}
		b = b[n:]
		if typ != protowire.VarintType {
			t.Fatalf("expecting varint fields only, got %v", typ)
		}
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			t.Fatalf("failed to consume varint for field %v", num)
		}
		b = b[n:]
		switch num {
		case 1:
			if v != StreamKindData {
				t.Errorf("expecting kind %v, got %v", StreamKindData, v)
			}
		case 2:
			if v != 3 {
				t.Errorf("expecting column 3, got %v", v)
			}
		case 3:
			if v != 128 {
				t.Errorf("expecting length 128, got %v", v)
			}
		}
	}
}

func TestStripeFooterEmbedsStreamsAndEncodings(t *testing.T) {
	streams := [][]byte{Stream(StreamKindPresent, 0, 4), Stream(StreamKindData, 0, 16)}
	encodings := [][]byte{ColumnEncoding(EncodingKindDirect)}
	b := StripeFooter(streams, encodings)
	var gotStreams, gotEncodings int
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			t.Fatalf("failed to consume tag")
		}
		b = b[n:]
		if typ != protowire.BytesType {
			t.Fatalf("expecting length-delimited fields, got %v", typ)
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			t.Fatalf("failed to consume bytes for field %v", num)
		}
		b = b[n:]
		switch num {
		case 1:
			gotStreams++
			_ = v
		case 2:
			gotEncodings++
		}
	}
	if gotStreams != 2 {
		t.Errorf("expecting 2 embedded streams, got %v", gotStreams)
	}
	if gotEncodings != 1 {
		t.Errorf("expecting 1 embedded encoding, got %v", gotEncodings)
	}
}

func TestPostScriptFields(t *testing.T) {
	b := PostScript(100, CompressionZstd, 65536, 1, "ORC")
	found := map[protowire.Number]bool{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			t.Fatalf("failed to consume tag")
		}
		b = b[n:]
		found[num] = true
		switch typ {
		case protowire.VarintType:
			_, n := protowire.ConsumeVarint(b)
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			b = b[n:]
			if num == 5 && string(v) != "ORC" {
				t.Errorf("expecting magic ORC, got %v", string(v))
			}
		}
	}
	for _, f := range []protowire.Number{1, 2, 3, 4, 5} {
		if !found[f] {
			t.Errorf("expecting field %v to be present", f)
		}
	}
}
