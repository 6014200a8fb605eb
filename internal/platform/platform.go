// Package platform abstracts the file-system primitives the extractor
// needs, so that the core decoding logic never imports "os" directly.
// Grounded in the lha_arch_* call sites in original_source/lib/
// lha_reader.c (open_output_file, set_directory_metadata,
// set_timestamps_from_header, extract_symlink) — lha_arch.h itself,
// which declares that function family, was not retrieved into the
// corpus.
package platform

import "io"

// ExistsResult is the outcome of a Platform.Exists check.
type ExistsResult int

const (
	NotExist ExistsResult = iota
	IsFile
	IsDir
	IsOther
)

// Platform is the set of file-system operations Extract needs. uid, gid
// and perms parameters use -1 to mean "not specified, use the process
// default", matching lha_arch_fopen's convention.
type Platform interface {
	// CreateFile creates path for writing, truncating any existing
	// file, optionally applying ownership and permissions.
	CreateFile(path string, uid, gid, perms int) (io.WriteCloser, error)

	// Mkdir creates a directory with the given mode.
	Mkdir(path string, mode uint32) error

	// Chmod sets a path's permission bits.
	Chmod(path string, mode uint32) error

	// Chown sets a path's owner and group.
	Chown(path string, uid, gid int) error

	// Symlink creates a symbolic link at path pointing to target.
	Symlink(target, path string) error

	// SetTimestamp sets a path's modification (and access) time from a
	// Unix epoch timestamp.
	SetTimestamp(path string, unixSeconds int64) error

	// SetWindowsTimestamps sets a path's creation/modification/access
	// times from Windows FILETIME values. Implementations with no
	// native FILETIME concept may treat this as a no-op.
	SetWindowsTimestamps(path string, creation, modification, access uint64) error

	// Exists reports what, if anything, already occupies path.
	Exists(path string) ExistsResult
}
