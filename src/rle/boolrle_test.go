package rle

import (
	"bytes"
	"testing"
)

func TestBooleanRLEPacking(t *testing.T) {
	var buf bytes.Buffer
	enc := NewBooleanRLE(&buf)
	bits := []bool{true, false, true, true, false, false, true, false}
	for _, b := range bits {
		if err := enc.Write(b); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Finish(); err != nil {
		t.Fatal(err)
	}
	got := buf.Bytes()
	// single literal byte 0b10110010 = 0xb2, plus the byte RLE literal header
	if len(got) != 2 {
		t.Fatalf("expecting 2 bytes, got %v (%v)", len(got), got)
	}
	if got[1] != 0xb2 {
		t.Errorf("expecting packed byte 0xb2, got %#x", got[1])
	}
}

func TestBooleanRLEPartialByte(t *testing.T) {
	var buf bytes.Buffer
	enc := NewBooleanRLE(&buf)
	for _, b := range []bool{true, true, true} {
		if err := enc.Write(b); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Finish(); err != nil {
		t.Fatal(err)
	}
	got := buf.Bytes()
	if len(got) != 2 {
		t.Fatalf("expecting 2 bytes, got %v", len(got))
	}
	if got[1] != 0xe0 {
		t.Errorf("expecting zero-padded packed byte 0xe0, got %#x", got[1])
	}
}

func TestBooleanRLEEmpty(t *testing.T) {
	var buf bytes.Buffer
	enc := NewBooleanRLE(&buf)
	if err := enc.Finish(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expecting no output, got %v bytes", buf.Len())
	}
}
