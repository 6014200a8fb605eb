package lhasa

import (
	"fmt"
	"io"

	"github.com/tsutsui/lhasa/internal/crc16"
	"github.com/tsutsui/lhasa/internal/lhnew"
)

// Decoder is the contract the reader drives: each Read call yields some
// number of decoded bytes, or (0, err) once the underlying stream is
// exhausted or found corrupt. Peer codecs for -lh0-, -lh1-, -lzs- and
// legacy -lh2-/-lh3- are out of scope for this module; newDecoder only
// ever constructs an internal/lhnew decoder.
type Decoder interface {
	io.Reader
}

// newDecoder constructs the codec for method reading compressed bytes
// from src.
func newDecoder(method string, src io.Reader) (Decoder, error) {
	params, ok := lhnew.ByMethod[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
	return lhnew.NewDecoder(src, params), nil
}

// countingDecoder wraps a raw codec, tracking running output length and
// CRC-16 the way the reference decoder framework does at the generic
// LHADecoder level (rather than inside each codec), and driving the
// progress callback off the same byte count.
type countingDecoder struct {
	inner Decoder

	length int64
	crc    uint16

	// ringSize is the codec's RingSize(): the minimum buffer capacity a
	// caller's Read must provide, since a single copy command can emit
	// that many bytes in one call. See internal/lhnew.Decoder.Read.
	ringSize int

	progress    ProgressFunc
	blockSize   int
	totalBlocks int
	blocksDone  int
}

func newCountingDecoder(inner Decoder, method string, totalLength int64, progress ProgressFunc) *countingDecoder {
	c := &countingDecoder{inner: inner, progress: progress}
	if p, ok := lhnew.ByMethod[method]; ok {
		c.blockSize = p.ProgressBlockSize()
		c.ringSize = p.RingSize()
	}
	if c.blockSize > 0 {
		c.totalBlocks = int((totalLength + int64(c.blockSize) - 1) / int64(c.blockSize))
	}
	return c
}

func (c *countingDecoder) Read(buf []byte) (int, error) {
	n, err := c.inner.Read(buf)
	if n > 0 {
		c.crc = crc16.Update(c.crc, buf[:n])
		c.length += int64(n)
		c.reportProgress()
	}
	return n, err
}

func (c *countingDecoder) reportProgress() {
	if c.progress == nil || c.blockSize <= 0 {
		return
	}
	done := int(c.length / int64(c.blockSize))
	if done != c.blocksDone {
		c.blocksDone = done
		c.progress(c.blocksDone, c.totalBlocks)
	}
}
