package huffman

import (
	"testing"

	"github.com/tsutsui/lhasa/internal/bitio"
)

// bitWriter accumulates individual bits MSB-first into bytes, the inverse
// of bitio.Reader, purely for constructing test fixtures.
type bitWriter struct {
	bytes []byte
	cur   byte
	n     int
}

func (w *bitWriter) writeBits(value uint, n int) {
	for i := n - 1; i >= 0; i-- {
		bit := (value >> uint(i)) & 1
		w.cur = w.cur<<1 | byte(bit)
		w.n++
		if w.n == 8 {
			w.bytes = append(w.bytes, w.cur)
			w.cur, w.n = 0, 0
		}
	}
}

func (w *bitWriter) finish() []byte {
	if w.n > 0 {
		w.cur <<= uint(8 - w.n)
		w.bytes = append(w.bytes, w.cur)
		w.n = 0
	}
	return w.bytes
}

func TestBuildAndReadRoundTrip(t *testing.T) {
	// Three symbols: A (len 1), B (len 2), C (len 2).
	// Canonical codes: A=0, B=10, C=11.
	lengths := []uint8{1, 2, 2}

	var w bitWriter
	w.writeBits(0b0, 1)  // A
	w.writeBits(0b10, 2) // B
	w.writeBits(0b11, 2) // C
	w.writeBits(0b0, 1)  // A again

	tree := New(len(lengths))
	if err := tree.Build(lengths); err != nil {
		t.Fatalf("Build: %v", err)
	}

	br := bitio.NewReader(&byteReader{b: w.finish()})
	want := []int{0, 1, 2, 0}
	for i, wantSym := range want {
		got, err := tree.ReadSymbol(br)
		if err != nil {
			t.Fatalf("symbol %d: %v", i, err)
		}
		if got != wantSym {
			t.Fatalf("symbol %d: got %d, want %d", i, got, wantSym)
		}
	}
}

func TestSetSingleConsumesNoBits(t *testing.T) {
	tree := New(4)
	tree.SetSingle(7)

	br := bitio.NewReader(&byteReader{}) // no data at all
	got, err := tree.ReadSymbol(br)
	if err != nil {
		t.Fatalf("ReadSymbol: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
	// A second read should also succeed without needing input.
	got, err = tree.ReadSymbol(br)
	if err != nil || got != 7 {
		t.Fatalf("second ReadSymbol: got (%d, %v), want (7, nil)", got, err)
	}
}

type byteReader struct{ b []byte }

func (r *byteReader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, nil
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}
