// Package lhnew implements the "new-style" LZSS+Huffman decoder used by
// the -lh4-, -lh5-, -lh6- and -lh7- LHA compression methods. It is a
// line-for-line semantic port of original_source/lib/lh_new_decoder.c,
// parametrized by Params instead of by C preprocessor macros.
package lhnew

import (
	"errors"
	"io"

	"github.com/tsutsui/lhasa/internal/bitio"
	"github.com/tsutsui/lhasa/internal/huffman"
)

const (
	// numCodes is the number of distinct command codes: 0-255 are
	// literal byte values, 256-509 are copy-length codes.
	numCodes = 510

	// maxTempCodes bounds both the temp-table (which encodes the code
	// table's lengths) and, since the same storage is reused, the
	// offset table - safe because HistoryBits never exceeds 16 for any
	// of lh4/5/6/7, which is less than maxTempCodes.
	maxTempCodes = 20

	// copyThreshold is added to a decoded copy-length code to get the
	// actual number of bytes to copy.
	copyThreshold = 3
)

// ErrCorrupt is returned when the bitstream cannot be decoded further,
// whether because of truncation or an internal inconsistency such as an
// incomplete Huffman table. It wraps the more specific bitio/huffman
// error where one is available.
var ErrCorrupt = errors.New("lhnew: corrupt or truncated stream")

// Decoder decodes a single LH-new compressed stream. It is not safe for
// concurrent use; create one per archive member.
type Decoder struct {
	params Params
	br     *bitio.Reader

	ring    []byte
	ringPos int

	blockRemaining int

	codeTree   *huffman.Tree
	offsetTree *huffman.Tree // doubles as the temp-table tree between blocks
}

// NewDecoder creates a Decoder reading compressed data from src.
func NewDecoder(src io.Reader, params Params) *Decoder {
	d := &Decoder{
		params:     params,
		br:         bitio.NewReader(src),
		ring:       make([]byte, params.RingSize()),
		codeTree:   huffman.New(numCodes),
		offsetTree: huffman.New(maxTempCodes),
	}
	for i := range d.ring {
		d.ring[i] = ' '
	}
	d.codeTree.InitEmpty()
	d.offsetTree.InitEmpty()
	return d
}

// Read decodes the next command from the stream: either a single literal
// byte or a copy from the ring buffer's history. It writes between 1 and
// params.RingSize() bytes into buf (the caller must size buf at least
// that large) and returns the count, or (0, err) on EOF or corruption.
func (d *Decoder) Read(buf []byte) (int, error) {
	for d.blockRemaining == 0 {
		if err := d.startNewBlock(); err != nil {
			return 0, err
		}
	}
	d.blockRemaining--

	code, err := d.codeTree.ReadSymbol(d.br)
	if err != nil {
		return 0, corrupt(err)
	}

	if code < 256 {
		d.outputByte(buf, 0, byte(code))
		return 1, nil
	}

	length := code - 256 + copyThreshold
	offset, err := d.readOffsetCode()
	if err != nil {
		return 0, corrupt(err)
	}

	start := ((d.ringPos-offset-1)%len(d.ring) + len(d.ring)) % len(d.ring)
	for i := 0; i < length; i++ {
		d.outputByte(buf, i, d.ring[(start+i)%len(d.ring)])
	}
	return length, nil
}

func (d *Decoder) outputByte(buf []byte, i int, b byte) {
	buf[i] = b
	d.ring[d.ringPos] = b
	d.ringPos = (d.ringPos + 1) % len(d.ring)
}

func corrupt(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrCorrupt, err)
}

// startNewBlock reads a block header: the block's command count, the
// temp table, the code table (encoded using the temp table) and the
// offset table, in that order, per spec.md §4.C.
func (d *Decoder) startNewBlock() error {
	blockLen, err := d.br.ReadBits(16)
	if err != nil {
		return corrupt(err)
	}
	d.blockRemaining = int(blockLen)

	if err := d.readTempTable(); err != nil {
		return err
	}
	if err := d.readCodeTable(); err != nil {
		return err
	}
	if err := d.readOffsetTable(); err != nil {
		return err
	}
	return nil
}

// readLengthValue reads a code length: 3 bits, extended by a unary tail
// of 1-bits (terminated by a 0) when the 3-bit value is 7.
func (d *Decoder) readLengthValue() (int, error) {
	length, err := d.br.ReadBits(3)
	if err != nil {
		return 0, corrupt(err)
	}
	result := int(length)
	if result == 7 {
		for {
			bit, err := d.br.ReadBit()
			if err != nil {
				return 0, corrupt(err)
			}
			if bit == 0 {
				break
			}
			result++
		}
	}
	return result, nil
}

// readTempTable reads the temp-table used to Huffman-encode the code
// table's lengths, storing it in offsetTree (reused storage).
func (d *Decoder) readTempTable() error {
	n, err := d.br.ReadBits(5)
	if err != nil {
		return corrupt(err)
	}

	if n == 0 {
		code, err := d.br.ReadBits(5)
		if err != nil {
			return corrupt(err)
		}
		d.offsetTree.SetSingle(code)
		return nil
	}

	if int(n) > maxTempCodes {
		n = maxTempCodes
	}

	lengths := make([]uint8, n)
	for i := 0; i < int(n); i++ {
		l, err := d.readLengthValue()
		if err != nil {
			return err
		}
		lengths[i] = uint8(l)

		// After the third length, a 2-bit field allows skipping
		// over up to three further lengths (left as zero).
		if i == 2 {
			pad, err := d.br.ReadBits(2)
			if err != nil {
				return corrupt(err)
			}
			for j := 0; j < int(pad); j++ {
				i++
				if i >= len(lengths) {
					break
				}
				lengths[i] = 0
			}
		}
	}

	return d.offsetTree.Build(lengths)
}

// readSkipCount decodes how many code-table entries a skip-range symbol
// (0, 1 or 2, read from the temp table) stands for.
func (d *Decoder) readSkipCount(skipRange int) (int, error) {
	switch skipRange {
	case 0:
		return 1, nil
	case 1:
		v, err := d.br.ReadBits(4)
		if err != nil {
			return 0, corrupt(err)
		}
		return int(v) + 3, nil
	default:
		v, err := d.br.ReadBits(9)
		if err != nil {
			return 0, corrupt(err)
		}
		return int(v) + 20, nil
	}
}

// readCodeTable reads the main code table (510 possible symbols: 256
// literals plus 254 copy-length codes), Huffman-encoded via the temp
// table just read into offsetTree.
func (d *Decoder) readCodeTable() error {
	n, err := d.br.ReadBits(9)
	if err != nil {
		return corrupt(err)
	}

	if n == 0 {
		code, err := d.br.ReadBits(9)
		if err != nil {
			return corrupt(err)
		}
		d.codeTree.SetSingle(code)
		return nil
	}

	if int(n) > numCodes {
		n = numCodes
	}

	lengths := make([]uint8, n)
	for i := 0; i < int(n); {
		code, err := d.offsetTree.ReadSymbol(d.br)
		if err != nil {
			return corrupt(err)
		}

		if code <= 2 {
			skip, err := d.readSkipCount(code)
			if err != nil {
				return err
			}
			for j := 0; j < skip && i < int(n); j++ {
				lengths[i] = 0
				i++
			}
		} else {
			lengths[i] = uint8(code - 2)
			i++
		}
	}

	return d.codeTree.Build(lengths)
}

// readOffsetTable reads the table used to decode copy offsets.
func (d *Decoder) readOffsetTable() error {
	n, err := d.br.ReadBits(d.params.OffsetBits)
	if err != nil {
		return corrupt(err)
	}

	if n == 0 {
		code, err := d.br.ReadBits(d.params.OffsetBits)
		if err != nil {
			return corrupt(err)
		}
		d.offsetTree.SetSingle(code)
		return nil
	}

	if int(n) > d.params.HistoryBits {
		n = uint16(d.params.HistoryBits)
	}

	lengths := make([]uint8, n)
	for i := range lengths {
		l, err := d.readLengthValue()
		if err != nil {
			return err
		}
		lengths[i] = uint8(l)
	}

	return d.offsetTree.Build(lengths)
}

// readOffsetCode decodes a copy offset: an offset-tree symbol gives the
// bit-length of the raw offset value that follows.
func (d *Decoder) readOffsetCode() (int, error) {
	bits, err := d.offsetTree.ReadSymbol(d.br)
	if err != nil {
		return 0, err
	}

	switch {
	case bits == 0:
		return 0, nil
	case bits == 1:
		return 1, nil
	default:
		v, err := d.br.ReadBits(bits - 1)
		if err != nil {
			return 0, corrupt(err)
		}
		return int(v) + (1 << uint(bits-1)), nil
	}
}
