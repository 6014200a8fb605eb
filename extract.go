package lhasa

import (
	"log/slog"

	"github.com/tsutsui/lhasa/internal/macbinary"
	"github.com/tsutsui/lhasa/internal/platform"
)

// Platform is the set of file-system primitives Extract needs; see
// internal/platform for the bundled Unix implementation built on
// golang.org/x/sys/unix.
type Platform = platform.Platform

func newMacBinaryReader(src Decoder) (Decoder, error) {
	return macbinary.NewReader(src)
}

// Extract applies the current entry to disk: for a normal file or
// directory entry it writes the file, creates the directory, or creates
// the symlink; for a FAKE_DIR entry (a directory popped off the
// deferred-metadata stack) it applies that directory's timestamps,
// ownership and permissions. path overrides the header's own path when
// non-empty. For the START/EOF states it is a no-op returning failure.
func (r *Reader) Extract(path string, progress ProgressFunc) (bool, error) {
	if r.platform == nil {
		return false, ErrNoPlatform
	}

	switch r.currFileType {
	case fileTypeNormal:
		return r.extractNormal(path, progress)
	case fileTypeFakeDir:
		if path == "" {
			path = r.currFile.Path
		}
		return r.setDirectoryMetadata(r.currFile, path), nil
	default:
		return false, nil
	}
}

// extractNormal dispatches a NORMAL entry. Following lha_reader.c's
// extract_normal exactly: the directory-method check comes first, and
// only within it does the symlink-target check decide between a
// symlink and a real directory. LHA has no separate symlink method tag;
// a symlink is a dirMethod header with a non-empty SymlinkTarget.
func (r *Reader) extractNormal(path string, progress ProgressFunc) (bool, error) {
	h := r.currFile
	switch {
	case h.CompressMethod != dirMethod:
		return r.extractFile(path, progress)
	case h.SymlinkTarget != "":
		return r.extractSymlink(path), nil
	default:
		return r.extractDirectory(path), nil
	}
}

func (r *Reader) extractDirectory(path string) bool {
	h := r.currFile
	if path == "" {
		path = h.Path
	}

	mode := uint32(0777)
	if h.ExtraFlags&ExtraUnixPerms != 0 {
		mode = 0700
	}

	if err := r.platform.Mkdir(path, mode); err != nil {
		// The directory may simply already exist; that isn't an error.
		return r.platform.Exists(path) == platform.IsDir
	}

	if r.dirPolicy == DirPolicyPlain {
		r.setDirectoryMetadata(h, path)
	} else {
		r.dirStack.push(h)
	}

	return true
}

func (r *Reader) extractFile(path string, progress ProgressFunc) (bool, error) {
	h := r.currFile
	if path == "" {
		path = h.FullPath()
	}

	if err := r.openDecoder(progress); err != nil {
		return false, nil
	}

	uid, gid, perms := -1, -1, -1
	if h.ExtraFlags&ExtraUnixUIDGID != 0 {
		uid, gid = int(h.UnixUID), int(h.UnixGID)
	}
	if h.ExtraFlags&ExtraUnixPerms != 0 {
		perms = int(h.UnixPerms)
	}

	out, err := r.platform.CreateFile(path, uid, gid, perms)
	if err != nil {
		return false, nil
	}

	ok, werr := r.doDecode(out)
	if cerr := out.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return false, werr
	}
	if !ok {
		return false, nil
	}

	r.setTimestampsFromHeader(path, h)
	return true, nil
}

func (r *Reader) extractSymlink(path string) bool {
	h := r.currFile
	if path == "" {
		path = h.FullPath()
	}

	// TODO: set symlink timestamp; the reference implementation never
	// did this either (no portable lutimes equivalent was wired up).
	return r.platform.Symlink(h.SymlinkTarget, path) == nil
}

func (r *Reader) setDirectoryMetadata(h *FileHeader, path string) bool {
	r.setTimestampsFromHeader(path, h)

	if h.ExtraFlags&ExtraUnixUIDGID != 0 {
		if err := r.platform.Chown(path, int(h.UnixUID), int(h.UnixGID)); err != nil {
			slog.Warn("chown failed, continuing without ownership change",
				"path", path, "entry", h.traceID(), "err", err)
		}
	}

	if h.ExtraFlags&ExtraUnixPerms != 0 {
		if err := r.platform.Chmod(path, h.UnixPerms); err != nil {
			return false
		}
	}

	return true
}

func (r *Reader) setTimestampsFromHeader(path string, h *FileHeader) {
	if h.ExtraFlags&ExtraWindowsTimestamps != 0 {
		if err := r.platform.SetWindowsTimestamps(path, h.WinCreationTime, h.WinModificationTime, h.WinAccessTime); err != nil {
			slog.Warn("setting windows timestamps failed", "path", path, "entry", h.traceID(), "err", err)
		}
		return
	}
	if h.Timestamp != 0 {
		if err := r.platform.SetTimestamp(path, h.Timestamp); err != nil {
			slog.Warn("setting timestamp failed", "path", path, "entry", h.traceID(), "err", err)
		}
	}
}
