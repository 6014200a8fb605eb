// Package macbinary strips the 128-byte MacBinary header MacLHA prepends
// to a file's decompressed stream before the actual data fork, exposing
// just the data fork to the caller. The wrapping contract (wrap the
// inner decoder, whose progress/CRC bookkeeping therefore still covers
// the full raw stream, and only for OSTypeMacOS entries) is grounded in
// original_source/lib/lha_reader.c's
// open_decoder, which calls lha_macbinary_passthrough for that case;
// the header field layout parsed here follows the teacher's own
// MacBinary/AppleDouble handling in internal/appledouble.
package macbinary

import (
	"bufio"
	"io"
)

const headerSize = 128

// srcBufferSize is the largest LH-new ring size (-lh7-, 1<<16): the
// minimum buffer an LH-new decoder's Read must be given.
const srcBufferSize = 1 << 16

// Header is the subset of a MacBinary header worth surfacing; the rest
// (Finder flags, secondary CRC, resource-fork length) is consumed but
// not exposed since this module does not reconstruct resource forks.
type Header struct {
	Filename string
	FileType string
	Creator  string
}

// Reader wraps a raw decoder, consuming the leading MacBinary header on
// the first Read and exposing only the bytes that follow.
type Reader struct {
	src    io.Reader
	header [headerSize]byte
	parsed bool

	Header Header
}

// NewReader wraps src, which must yield a 128-byte MacBinary header
// followed by the file's data fork. src is read through a buffer of
// srcBufferSize bytes, so every Read on src gets at least that much room
// even while the 128-byte header is being consumed.
func NewReader(src io.Reader) (*Reader, error) {
	return &Reader{src: bufio.NewReaderSize(src, srcBufferSize)}, nil
}

func (r *Reader) Read(buf []byte) (int, error) {
	if !r.parsed {
		if _, err := io.ReadFull(r.src, r.header[:]); err != nil {
			return 0, err
		}
		r.Header = parseHeader(&r.header)
		r.parsed = true
	}
	return r.src.Read(buf)
}

// parseHeader decodes the fixed-offset fields of a MacBinary header:
// byte 1 is the Pascal-string length of the original filename (bytes
// 2..65), bytes 65..69 and 69..73 are the four-character file type and
// creator codes.
func parseHeader(raw *[headerSize]byte) Header {
	nameLen := int(raw[1])
	if nameLen > 63 {
		nameLen = 63
	}
	return Header{
		Filename: string(raw[2 : 2+nameLen]),
		FileType: string(raw[65:69]),
		Creator:  string(raw[69:73]),
	}
}
