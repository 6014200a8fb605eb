package bitio

import (
	"bytes"
	"io"
	"strconv"
	"testing"
	"testing/iotest"
)

func allOnes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

func TestReadBitsAllOnes(t *testing.T) {
	for n := 1; n <= 16; n++ {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			src := allOnes(4)
			r := NewReader(bytes.NewReader(src))
			want := uint16(1<<uint(n) - 1)

			total := len(src) * 8
			for total >= n {
				v, err := r.ReadBits(n)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if v != want {
					t.Fatalf("got %#x, want %#x", v, want)
				}
				total -= n
			}

			if _, err := r.ReadBits(n); total < n && err == nil {
				t.Fatalf("expected EOF once remaining bits (%d) < n (%d)", total, n)
			}
		})
	}
}

func TestReadBitsMSBFirst(t *testing.T) {
	// 0b10110010 0b01000001
	r := NewReader(bytes.NewReader([]byte{0xB2, 0x41}))
	bits := []int{1, 0, 1, 1, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 1}
	for i, want := range bits {
		got, err := r.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: unexpected error %v", i, err)
		}
		if got != want {
			t.Fatalf("bit %d: got %d, want %d", i, got, want)
		}
	}
	if _, err := r.ReadBit(); err == nil {
		t.Fatal("expected EOF after consuming all bits")
	}
}

func TestReadBitsChunkingIndependent(t *testing.T) {
	data := []byte{0x5A, 0xC3, 0x7E, 0x01, 0x99}

	var viaWhole []uint16
	r1 := NewReader(bytes.NewReader(data))
	for {
		v, err := r1.ReadBits(3)
		if err != nil {
			break
		}
		viaWhole = append(viaWhole, v)
	}

	var viaOneByte []uint16
	r2 := NewReader(iotest.OneByteReader(bytes.NewReader(data)))
	for {
		v, err := r2.ReadBits(3)
		if err != nil {
			break
		}
		viaOneByte = append(viaOneByte, v)
	}

	if len(viaWhole) != len(viaOneByte) {
		t.Fatalf("length mismatch: %d vs %d", len(viaWhole), len(viaOneByte))
	}
	for i := range viaWhole {
		if viaWhole[i] != viaOneByte[i] {
			t.Fatalf("value %d mismatch: %#x vs %#x", i, viaWhole[i], viaOneByte[i])
		}
	}
}

func TestNoPartialValueOnEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xFF}))
	if _, err := r.ReadBits(8); err != nil {
		t.Fatalf("unexpected error reading the one real byte: %v", err)
	}
	if _, err := r.ReadBits(1); err != io.ErrUnexpectedEOF {
		t.Fatalf("got %v, want io.ErrUnexpectedEOF", err)
	}
}
