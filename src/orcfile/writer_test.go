package orcfile

import (
	"bytes"
	"testing"

	"github.com/kokes/orcwrite/src/data"
	"github.com/kokes/orcwrite/src/schema"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestOpenWritesMagicHeader(t *testing.T) {
	var buf bytes.Buffer
	s := schema.Struct(schema.Field{Name: "x", Type: schema.Long()})
	cfg := DefaultConfig()
	if _, err := Open(&buf, s, cfg); err != nil {
		t.Fatal(err)
	}
	if got := buf.String()[:3]; got != Magic {
		t.Errorf("expecting magic %q, got %q", Magic, got)
	}
}

func TestWriteBatchAndFinishProducesPostscript(t *testing.T) {
	var buf bytes.Buffer
	s := schema.Struct(schema.Field{Name: "x", Type: schema.Long()})
	cfg := DefaultConfig()
	w, err := Open(&buf, s, cfg)
	if err != nil {
		t.Fatal(err)
	}

	root := w.Data().(*data.StructNode)
	x := root.Child(0).(*data.LongNode)

	for i := int64(0); i < 3; i++ {
		if err := root.Write(true); err != nil {
			t.Fatal(err)
		}
		v := i
		if err := x.Write(&v); err != nil {
			t.Fatal(err)
		}
		if err := w.WriteBatch(1); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.Bytes()
	if len(out) < 4 {
		t.Fatalf("output too short: %d bytes", len(out))
	}
	if string(out[:3]) != Magic {
		t.Errorf("expecting magic header, got %q", out[:3])
	}

	psLen := int(out[len(out)-1])
	if psLen <= 0 || psLen > 255 {
		t.Fatalf("postscript length byte out of range: %d", psLen)
	}
	ps := out[len(out)-1-psLen : len(out)-1]

	b := ps
	for len(b) > 0 {
		_, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			t.Fatalf("malformed postscript tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		// every field is a varint except the magic string (field 5)
		var n2 int
		if typ == protowire.BytesType {
			_, n2 = protowire.ConsumeBytes(b)
		} else {
			_, n2 = protowire.ConsumeVarint(b)
		}
		if n2 < 0 {
			t.Fatalf("malformed postscript field: %v", protowire.ParseError(n2))
		}
		b = b[n2:]
	}
}

func TestWriteBatchMismatchedRowCountPanics(t *testing.T) {
	var buf bytes.Buffer
	s := schema.Struct(schema.Field{Name: "x", Type: schema.Long()})
	w, err := Open(&buf, s, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	root := w.Data().(*data.StructNode)

	defer func() {
		if recover() == nil {
			t.Fatal("expecting a panic on row-count mismatch")
		}
	}()
	// Struct row written but its child never touched: WriteBatch's
	// VerifyRowCount should catch the child's unmet row count.
	if err := root.Write(true); err != nil {
		t.Fatal(err)
	}
	_ = w.WriteBatch(1)
}

func TestPoisonedWriterRejectsFurtherCalls(t *testing.T) {
	var buf bytes.Buffer
	s := schema.Long()
	w, err := Open(&buf, s, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	root := w.Data().(*data.LongNode)
	v := int64(1)
	if err := root.Write(&v); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBatch(1); err != nil {
		t.Fatal(err)
	}
	if err := w.Finish(); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBatch(1); err == nil {
		t.Error("expecting an error from a writer that already finished")
	}
}
