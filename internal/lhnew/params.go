package lhnew

// Params describes the fixed sizing that distinguishes the lh4/lh5/lh6/lh7
// variants of the LH-new codec, matching the per-method constants
// (HISTORY_BITS, OFFSET_BITS) and the LHACodec struct literals in
// original_source/lib/lh_new_decoder.c.
type Params struct {
	HistoryBits int
	OffsetBits  int

	// ProgressDivisor is the divisor applied to the ring buffer size to
	// produce the "block" unit used by progress callbacks (spec.md §6).
	// lh4 uses 4 ("a hack for -lh4-" per the reference decoder); the
	// others use 2.
	ProgressDivisor int
}

// RingSize is 1 << HistoryBits, the ring-buffer/output-buffer size.
func (p Params) RingSize() int { return 1 << p.HistoryBits }

// ProgressBlockSize is the "block" unit reported in progress callbacks.
func (p Params) ProgressBlockSize() int { return p.RingSize() / p.ProgressDivisor }

// Fixed parameter sets for the four codecs this package implements.
var (
	LH4 = Params{HistoryBits: 12, OffsetBits: 4, ProgressDivisor: 4}
	LH5 = Params{HistoryBits: 13, OffsetBits: 4, ProgressDivisor: 2}
	LH6 = Params{HistoryBits: 15, OffsetBits: 5, ProgressDivisor: 2}
	LH7 = Params{HistoryBits: 16, OffsetBits: 5, ProgressDivisor: 2}
)

// ByMethod maps the 5-byte archive method tag to its Params, covering the
// four "new-style" LZSS+Huffman methods this package decodes.
var ByMethod = map[string]Params{
	"-lh4-": LH4,
	"-lh5-": LH5,
	"-lh6-": LH6,
	"-lh7-": LH7,
}
