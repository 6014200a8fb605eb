package lhasa

import "io"

// fileType is the reader's CURR_FILE_* state from spec.md §4.E.
type fileType int

const (
	fileTypeStart fileType = iota
	fileTypeNormal
	fileTypeFakeDir
	fileTypeEOF
)

// HeaderSource is the out-of-scope "basic reader" this module pulls
// entries from: it parses the archive container format and hands back
// FileHeader records plus, on demand, a byte source for the current
// entry's raw compressed data. A real implementation wraps the
// container's own header parsing; this module never constructs headers
// itself.
type HeaderSource interface {
	// Next advances to the next entry in the archive. It is a no-op
	// once the archive is exhausted.
	Next()

	// CurrFile returns the entry the source is currently positioned
	// at, or nil once the archive is exhausted.
	CurrFile() *FileHeader

	// Decode returns a reader over the current entry's raw compressed
	// bytes, bounded to exactly that entry's extent in the archive.
	Decode() (io.Reader, error)
}

// Reader iterates the entries of an LHA archive, decoding them on
// demand and applying the configured directory-metadata policy. It is
// not safe for concurrent use.
type Reader struct {
	src HeaderSource

	currFile     *FileHeader
	currFileType fileType

	decoder      Decoder
	innerDecoder *countingDecoder

	dirPolicy DirPolicy
	dirStack  *dirStack

	platform Platform
}

// NewReader creates a Reader pulling headers and raw bytes from src.
// platform may be nil if the caller never calls Extract (Read and Check
// work regardless).
func NewReader(src HeaderSource, platform Platform) *Reader {
	return &Reader{
		src:       src,
		dirStack:  newDirStack(),
		dirPolicy: DirPolicyEndOfDir,
		platform:  platform,
	}
}

// SetDirPolicy changes how directory metadata is applied for entries
// read from this point on.
func (r *Reader) SetDirPolicy(p DirPolicy) {
	r.dirPolicy = p
}

// Close releases any headers still retained on the directory stack.
// After Close, the Reader must not be used again.
func (r *Reader) Close() {
	r.dirStack.drain()
}

func (r *Reader) closeDecoders() {
	r.decoder = nil
	r.innerDecoder = nil
}

// NextFile advances to, and returns, the next entry: either the next
// normal entry from the underlying source, or a directory popped off
// the stack and re-yielded as a FAKE_DIR entry so the caller can apply
// its deferred metadata. It returns nil once both are exhausted.
func (r *Reader) NextFile() *FileHeader {
	r.closeDecoders()

	if r.currFileType == fileTypeEOF {
		return nil
	}

	if r.currFileType == fileTypeStart || r.currFileType == fileTypeNormal {
		r.src.Next()
	}

	if r.currFileType == fileTypeFakeDir {
		r.currFile.Release()
	}

	next := r.src.CurrFile()

	if endOfTopDir(r.dirPolicy, r.dirStack.top(), next) {
		r.currFile = r.dirStack.pop()
		r.currFileType = fileTypeFakeDir
	} else if next != nil {
		r.currFile = next
		r.currFileType = fileTypeNormal
	} else {
		r.currFile = nil
		r.currFileType = fileTypeEOF
	}

	return r.currFile
}

// openDecoder lazily constructs the codec for the current entry,
// wrapping it in a MacBinary passthrough filter when the entry's origin
// OS calls for one.
func (r *Reader) openDecoder(progress ProgressFunc) error {
	if r.currFileType != fileTypeNormal {
		return ErrNoCurrentFile
	}

	raw, err := r.src.Decode()
	if err != nil {
		return err
	}

	codec, err := newDecoder(r.currFile.CompressMethod, raw)
	if err != nil {
		return err
	}

	inner := newCountingDecoder(codec, r.currFile.CompressMethod, r.currFile.Length, progress)
	r.innerDecoder = inner

	if r.currFile.OSType == OSTypeMacOS {
		mb, err := newMacBinaryReader(inner)
		if err != nil {
			return err
		}
		r.decoder = mb
	} else {
		r.decoder = inner
	}

	return nil
}

// Read decodes up to len(buf) bytes... in practice, one command's worth
// (at most the codec's ring size) per call, creating the decoder on
// first use.
func (r *Reader) Read(buf []byte) (int, error) {
	if r.decoder == nil {
		if err := r.openDecoder(nil); err != nil {
			return 0, err
		}
	}
	return r.decoder.Read(buf)
}

// doDecode drains the current entry's decoder, writing to w if non-nil
// (a nil w discards output, as Check does), and reports whether the
// fully-decoded length and CRC-16 matched the header. Any decode error
// simply stops the loop early — length/CRC naturally won't match for a
// truncated or corrupt stream, which is the signal callers rely on.
//
// The scratch buffer must hold at least one codec command's worth of
// output; internal/lhnew.Decoder.Read can emit up to the codec's
// RingSize() bytes in a single call, so doDecode sizes its buffer from
// innerDecoder.ringSize rather than an arbitrary constant.
func (r *Reader) doDecode(w io.Writer) (bool, error) {
	buf := make([]byte, r.innerDecoder.ringSize)
	for {
		n, err := r.Read(buf)
		if n > 0 && w != nil {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return false, werr
			}
		}
		if err != nil || n == 0 {
			break
		}
	}

	return r.innerDecoder.length == r.currFile.Length &&
		r.innerDecoder.crc == r.currFile.CRC, nil
}

// Check decodes the current entry, discarding output, and reports
// whether its length and CRC-16 match the header. Directories succeed
// trivially without invoking a decoder.
func (r *Reader) Check(progress ProgressFunc) (bool, error) {
	if r.currFileType != fileTypeNormal {
		return false, nil
	}
	if r.currFile.IsDir() {
		return true, nil
	}
	if err := r.openDecoder(progress); err != nil {
		return false, err
	}
	return r.doDecode(nil)
}
