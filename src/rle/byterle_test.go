package rle

import (
	"bytes"
	"testing"
)

func TestByteRLERun(t *testing.T) {
	var buf bytes.Buffer
	enc := NewByteRLE(&buf)
	for i := 0; i < 10; i++ {
		if err := enc.Write(0x42); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Finish(); err != nil {
		t.Fatal(err)
	}
	got := buf.Bytes()
	want := []byte{byte(int8(10 - minRepeat)), 0x42}
	if !bytes.Equal(got, want) {
		t.Errorf("expecting %v, got %v", want, got)
	}
}

func TestByteRLELiterals(t *testing.T) {
	var buf bytes.Buffer
	enc := NewByteRLE(&buf)
	vals := []byte{1, 2, 3, 5, 8, 13}
	for _, v := range vals {
		if err := enc.Write(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Finish(); err != nil {
		t.Fatal(err)
	}
	got := buf.Bytes()
	if len(got) != len(vals)+1 {
		t.Fatalf("expecting %v bytes, got %v (%v)", len(vals)+1, len(got), got)
	}
	if got[0] != byte(int8(-len(vals))) {
		t.Errorf("expecting literal header %v, got %v", byte(int8(-len(vals))), got[0])
	}
	if !bytes.Equal(got[1:], vals) {
		t.Errorf("expecting %v, got %v", vals, got[1:])
	}
}

func TestByteRLEMixed(t *testing.T) {
	var buf bytes.Buffer
	enc := NewByteRLE(&buf)
	seq := []byte{1, 2, 9, 9, 9, 9, 9, 3, 4}
	for _, v := range seq {
		if err := enc.Write(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Finish(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Fatal("expecting non-empty output")
	}
}

func TestByteRLEEmpty(t *testing.T) {
	var buf bytes.Buffer
	enc := NewByteRLE(&buf)
	if err := enc.Finish(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expecting no output for an empty stream, got %v bytes", buf.Len())
	}
}
