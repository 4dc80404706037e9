package compress

import (
	"bytes"
	"testing"
)

func TestStreamNoneRoundsTripLength(t *testing.T) {
	s := NewStream(None, 0)
	payload := []byte("hello world")
	if _, err := s.Write(payload); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	n, err := s.Finish(&out)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(payload)) {
		t.Errorf("expecting %v bytes, got %v", len(payload), n)
	}
	if !bytes.Equal(out.Bytes(), payload) {
		t.Errorf("expecting uncompressed passthrough, got %v", out.Bytes())
	}
}

func TestStreamZlibFramesABlock(t *testing.T) {
	s := NewStream(Zlib, 0)
	payload := bytes.Repeat([]byte("a"), 1000)
	if _, err := s.Write(payload); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if _, err := s.Finish(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() < 3 {
		t.Fatalf("expecting at least a block header, got %v bytes", out.Len())
	}
	if out.Len() >= len(payload) {
		t.Errorf("expecting compression to shrink a repetitive block, got %v vs %v original", out.Len(), len(payload))
	}
}

func TestStreamNoneIgnoresBlockSize(t *testing.T) {
	s := NewStream(None, 8)
	if _, err := s.Write(bytes.Repeat([]byte("x"), 20)); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	n, err := s.Finish(&out)
	if err != nil {
		t.Fatal(err)
	}
	if n != 20 {
		t.Errorf("expecting 20 bytes total, got %v", n)
	}
}

func TestStreamLzoUnsupported(t *testing.T) {
	s := NewStream(Lzo, 0)
	if _, err := s.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if _, err := s.Finish(&out); err == nil {
		t.Fatal("expecting an error for LZO, got nil")
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	kinds := []Kind{None, Zlib, Snappy, Lzo, Lz4, Zstd}
	for _, k := range kinds {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatal(err)
		}
		if parsed != k {
			t.Errorf("expecting %v, got %v", k, parsed)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	if _, err := ParseKind("bogus"); err == nil {
		t.Fatal("expecting an error for an unknown kind")
	}
}
