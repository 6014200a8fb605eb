// Package huffman builds and walks the canonical Huffman decode tables
// used by the LH-new codec: a flat array of 2*N 16-bit entries forming a
// binary trie, ported from the temp-table/code-table/offset-table
// machinery of lha's lh_new_decoder.c.
package huffman

import "errors"

// BitSource is the subset of bitio.Reader that tree walking needs.
type BitSource interface {
	ReadBit() (int, error)
}

// leafFlag marks a table entry as a leaf; the low bits hold the symbol.
const leafFlag = uint16(1 << 15)

// unset marks a table entry that has not yet been assigned during Build.
const unset = uint16(0xFFFF)

// ErrInvalidLengths is returned by Build when the code-length vector
// cannot form a valid binary trie (more codes of a given length than fit).
var ErrInvalidLengths = errors.New("huffman: code lengths do not form a valid tree")

// Tree is a canonical Huffman decode table. The zero value is not usable;
// construct with New.
type Tree struct {
	table []uint16
}

// New allocates a Tree with room for up to maxSymbols distinct symbols.
func New(maxSymbols int) *Tree {
	return &Tree{table: make([]uint16, 2*maxSymbols)}
}

// InitEmpty resets the table to a known, empty state (every entry unset).
// Matches init_tree in lh_new_decoder.c.
func (t *Tree) InitEmpty() {
	for i := range t.table {
		t.table[i] = unset
	}
}

// SetSingle installs a degenerate tree in which every possible bit
// sequence decodes to symbol without consuming more than the minimum
// number of bits the trie's shape forces (in practice: the caller never
// calls ReadSymbol enough times to observe this since a degenerate tree
// is only used when the block's declared code/offset count is zero).
func (t *Tree) SetSingle(symbol uint16) {
	t.InitEmpty()
	t.table[0] = leafFlag | symbol
	t.table[1] = leafFlag | symbol
}

// Build constructs a canonical prefix code from lengths, where lengths[i]
// is the bit-length of symbol i and a length of 0 means "symbol absent".
// Symbols are assigned codes in ascending order of length, each the next
// available prefix of that length - the standard canonical-Huffman
// construction used throughout the LHA family.
//
// An encoder is required to emit a set of lengths that forms a valid
// prefix-free code; Build does not error on a merely incomplete code
// (some leaves left unset), only on one that overflows the trie. This
// mirrors the reference decoder's tolerance of odd-but-decodable inputs.
func (t *Tree) Build(lengths []uint8) error {
	t.InitEmpty()

	var maxLen uint8
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return nil
	}

	// next table index to allocate; index 0 is the root.
	next := uint16(2)

	// For each length from 1 up to maxLen, we know how many leaves at
	// that depth must exist based on symbol count; we walk length by
	// length maintaining the current "insertion point" as a bit path.
	type pathEntry struct {
		node uint16
		side int // 0 = next free is .zero, 1 = next free is .one
	}

	// Stack of nodes still needing children, ordered by insertion time
	// (breadth-first by length, left to right) - this mirrors the
	// "next available prefix of that length" canonical assignment.
	var frontier []pathEntry
	frontier = append(frontier, pathEntry{node: 0, side: 0})

	for length := uint8(1); length <= maxLen; length++ {
		var nextFrontier []pathEntry

		// Expand every frontier node into two children at this depth
		// that aren't yet leaves, in order.
		expanded := make([]uint16, 0, len(frontier)*2)
		for _, pe := range frontier {
			left := next
			if int(left)+1 >= len(t.table) {
				return ErrInvalidLengths
			}
			t.table[pe.node] = left
			next += 2
			expanded = append(expanded, left, left+1)
		}

		// Assign symbols of this length, left to right, to the
		// expanded leaf slots; slots not used for a symbol become
		// internal nodes available to the next depth.
		slot := 0
		for sym, l := range lengths {
			if l != length {
				continue
			}
			if slot >= len(expanded) {
				return ErrInvalidLengths
			}
			t.table[expanded[slot]] = leafFlag | uint16(sym)
			slot++
		}
		for ; slot < len(expanded); slot++ {
			nextFrontier = append(nextFrontier, pathEntry{node: expanded[slot]})
		}

		frontier = nextFrontier
		if len(frontier) == 0 {
			break
		}
	}

	return nil
}

// ReadSymbol walks the tree one bit at a time until a leaf is reached,
// returning its symbol. EOF while walking propagates from br; reaching an
// entry that Build never assigned returns ErrInvalidLengths.
func (t *Tree) ReadSymbol(br BitSource) (int, error) {
	node := uint16(0)
	for {
		entry := t.table[node]
		if entry == unset {
			return -1, ErrInvalidLengths
		}
		if entry&leafFlag != 0 {
			return int(entry &^ leafFlag), nil
		}
		bit, err := br.ReadBit()
		if err != nil {
			return -1, err
		}
		node = entry + uint16(bit)
	}
}
