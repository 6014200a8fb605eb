package lhasa

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// dirMethod is the 5-byte compress_method tag marking a directory entry
// (and, per lha_reader.c, also the tag under which symlinks are encoded
// when symlink_target is non-empty).
const dirMethod = "-lhd-"

// OSType identifies the origin operating system recorded in a header.
// Only OSTypeMacOS changes decode behavior (triggering MacBinary
// stripping).
type OSType int

const (
	OSTypeUnknown OSType = iota
	OSTypeUnix
	OSTypeMacOS
	OSTypeWindows
)

// ExtraFlag is a bitmask of which optional metadata fields a FileHeader
// carries.
type ExtraFlag uint8

const (
	ExtraUnixUIDGID ExtraFlag = 1 << iota
	ExtraUnixPerms
	ExtraWindowsTimestamps
)

// FileHeader describes one archive member, as produced by the external
// basic reader (out of scope for this module; see HeaderSource).
//
// Headers are reference-counted rather than strictly owned, because the
// directory-policy stack (dirstack.go) may retain a header that is
// simultaneously the reader's "current" entry.
type FileHeader struct {
	// Path is the directory prefix, including a trailing separator when
	// non-empty. Filename is the leaf name, empty for pure directory
	// entries that carry no further path component.
	Path     string
	Filename string

	// CompressMethod is the 5-byte ASCII method tag. dirMethod marks a
	// directory (or, with SymlinkTarget set, a symlink).
	CompressMethod string
	Length         int64
	CRC            uint16

	OSType        OSType
	SymlinkTarget string

	// Timestamp is Unix epoch seconds, or 0 if absent.
	Timestamp int64

	ExtraFlags                  ExtraFlag
	UnixUID, UnixGID, UnixPerms uint32

	WinCreationTime, WinModificationTime, WinAccessTime uint64

	refs int
}

// AddRef increments h's reference count and returns h, for chaining into
// an assignment (mirrors lha_file_header_add_ref).
func (h *FileHeader) AddRef() *FileHeader {
	h.refs++
	return h
}

// Release decrements h's reference count (mirrors lha_file_header_free,
// minus the actual free: the garbage collector does that once every
// reference is gone).
func (h *FileHeader) Release() {
	h.refs--
}

// FullPath is the conventional output path when no explicit path is
// given to Extract: Path already ends in a separator when non-empty, so
// this is plain concatenation, not path.Join.
func (h *FileHeader) FullPath() string {
	return h.Path + h.Filename
}

// IsDir reports whether this entry is a directory marker. A symlink is
// also encoded with CompressMethod == dirMethod, distinguished by a
// non-empty SymlinkTarget; see extract.go.
func (h *FileHeader) IsDir() bool {
	return h.CompressMethod == dirMethod
}

// traceID is a stable, content-derived identifier safe to put in log
// attributes without leaking a full path at a glance.
func (h *FileHeader) traceID() uint64 {
	return xxhash.Sum64String(h.Path + h.Filename + h.CompressMethod)
}

func (h *FileHeader) String() string {
	return fmt.Sprintf("%s (%s)", h.FullPath(), h.CompressMethod)
}
