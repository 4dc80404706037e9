package stripe

import (
	"bytes"
	"testing"

	"github.com/kokes/orcwrite/src/compress"
	"github.com/kokes/orcwrite/src/data"
	"github.com/kokes/orcwrite/src/schema"
)

func TestFlushProducesNonEmptyOutputAndResets(t *testing.T) {
	s := schema.Struct(schema.Field{Name: "x", Type: schema.Long()})
	schema.Assign(s)
	root := data.New(s, data.Config{Compression: compress.None}).(*data.StructNode)
	x := root.Child(0).(*data.LongNode)

	if err := root.Write(true); err != nil {
		t.Fatal(err)
	}
	v := int64(5)
	if err := x.Write(&v); err != nil {
		t.Fatal(err)
	}
	root.VerifyRowCount(1)

	st := New(root, compress.None, 0)
	st.AddRows(1)
	if st.RowCount() != 1 {
		t.Fatalf("expecting row count 1, got %v", st.RowCount())
	}

	var buf bytes.Buffer
	desc, err := st.Flush(&buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if desc.RowCount != 1 {
		t.Errorf("expecting descriptor row count 1, got %v", desc.RowCount)
	}
	if desc.DataLength == 0 {
		t.Error("expecting non-zero data length")
	}
	if desc.FooterLength == 0 {
		t.Error("expecting non-zero footer length")
	}
	if desc.IndexLength != 0 {
		t.Errorf("expecting zero index length (stubbed), got %v", desc.IndexLength)
	}
	if st.RowCount() != 0 {
		t.Error("expecting row count reset to 0 after flush")
	}
}

func TestEstimatedSizeGrowsWithWrites(t *testing.T) {
	s := schema.Long()
	schema.Assign(s)
	root := data.New(s, data.Config{Compression: compress.None})
	st := New(root, compress.None, 0)
	before := st.EstimatedSize()
	v := int64(42)
	if err := root.(*data.LongNode).Write(&v); err != nil {
		t.Fatal(err)
	}
	after := st.EstimatedSize()
	if after <= before {
		t.Errorf("expecting estimated size to grow, before=%v after=%v", before, after)
	}
}
