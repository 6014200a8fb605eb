//go:build unix

package platform

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Unix implements Platform with direct syscalls via golang.org/x/sys/unix
// where the standard library's wrapper doesn't give enough control
// (ownership at creation time, nanosecond timestamps without following
// symlinks).
type Unix struct{}

// NewUnix returns the Unix Platform implementation.
func NewUnix() Unix { return Unix{} }

func (Unix) CreateFile(path string, uid, gid, perms int) (io.WriteCloser, error) {
	mode := os.FileMode(0666)
	if perms >= 0 {
		mode = os.FileMode(perms)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return nil, err
	}

	if uid >= 0 && gid >= 0 {
		if err := unix.Fchown(int(f.Fd()), uid, gid); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func (Unix) Mkdir(path string, mode uint32) error {
	return unix.Mkdir(path, mode)
}

func (Unix) Chmod(path string, mode uint32) error {
	return unix.Chmod(path, mode)
}

func (Unix) Chown(path string, uid, gid int) error {
	return unix.Chown(path, uid, gid)
}

func (Unix) Symlink(target, path string) error {
	return unix.Symlink(target, path)
}

func (Unix) SetTimestamp(path string, unixSeconds int64) error {
	ts := unix.NsecToTimespec(unixSeconds * int64(1e9))
	return unix.UtimesNanoAt(unix.AT_FDCWD, path, []unix.Timespec{ts, ts}, unix.AT_SYMLINK_NOFOLLOW)
}

func (Unix) SetWindowsTimestamps(path string, creation, modification, access uint64) error {
	// No FILETIME concept on Unix; a header carrying only Windows
	// timestamps leaves the file's times at their creation-time
	// default, matching the teacher's pattern of carrying fields a
	// given platform backend cannot act on rather than erroring.
	return nil
}

func (Unix) Exists(path string) ExistsResult {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return NotExist
	}
	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		return IsDir
	case unix.S_IFREG:
		return IsFile
	default:
		return IsOther
	}
}
