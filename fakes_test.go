package lhasa

import (
	"bytes"
	"io"

	"github.com/tsutsui/lhasa/internal/platform"
)

// sliceHeaderSource is a HeaderSource over an in-memory slice, standing
// in for the out-of-scope basic archive reader in tests.
type sliceHeaderSource struct {
	headers []*FileHeader
	pos     int
}

func newSliceHeaderSource(headers []*FileHeader) *sliceHeaderSource {
	return &sliceHeaderSource{headers: headers, pos: -1}
}

func (s *sliceHeaderSource) Next() {
	if s.pos < len(s.headers) {
		s.pos++
	}
}

func (s *sliceHeaderSource) CurrFile() *FileHeader {
	if s.pos < 0 || s.pos >= len(s.headers) {
		return nil
	}
	return s.headers[s.pos]
}

func (s *sliceHeaderSource) Decode() (io.Reader, error) {
	return bytes.NewReader(nil), nil
}

// fakePlatform is a no-op Platform for tests that exercise the extractor
// state machine without touching a real filesystem.
type fakePlatform struct {
	mkdirCalls  []string
	mkdirModes  []uint32
	chmodCalls  []string
	chownCalls  []string
	createCalls []string
	createBuf   bytes.Buffer
	existing    map[string]platform.ExistsResult
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{existing: map[string]platform.ExistsResult{}}
}

func (f *fakePlatform) CreateFile(path string, uid, gid, perms int) (io.WriteCloser, error) {
	f.createCalls = append(f.createCalls, path)
	return nopWriteCloser{&f.createBuf}, nil
}

func (f *fakePlatform) Mkdir(path string, mode uint32) error {
	f.mkdirCalls = append(f.mkdirCalls, path)
	f.mkdirModes = append(f.mkdirModes, mode)
	f.existing[path] = platform.IsDir
	return nil
}

func (f *fakePlatform) Chmod(path string, mode uint32) error {
	f.chmodCalls = append(f.chmodCalls, path)
	return nil
}

func (f *fakePlatform) Chown(path string, uid, gid int) error {
	f.chownCalls = append(f.chownCalls, path)
	return nil
}

func (f *fakePlatform) Symlink(target, path string) error { return nil }

func (f *fakePlatform) SetTimestamp(path string, unixSeconds int64) error { return nil }

func (f *fakePlatform) SetWindowsTimestamps(path string, creation, modification, access uint64) error {
	return nil
}

func (f *fakePlatform) Exists(path string) platform.ExistsResult {
	if r, ok := f.existing[path]; ok {
		return r
	}
	return platform.NotExist
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
