package lhasa

import "strings"

// DirPolicy selects when a directory's metadata (timestamps, ownership,
// permissions) is applied relative to its contents being written.
type DirPolicy int

const (
	// DirPolicyPlain applies metadata immediately when the directory is
	// created; the stack is never used.
	DirPolicyPlain DirPolicy = iota

	// DirPolicyEndOfDir defers metadata until the next entry's path no
	// longer falls under the directory, which — for an archive stored
	// in the usual depth-first order — is right after its contents are
	// fully written.
	DirPolicyEndOfDir

	// DirPolicyEndOfFile defers metadata for every directory until the
	// whole archive has been read, then flushes them in LIFO order.
	DirPolicyEndOfFile
)

// dirStack retains directory headers awaiting deferred metadata
// application. Archives are depth-first, so pushes and pops naturally
// nest like a stack under DirPolicyEndOfDir; under DirPolicyEndOfFile it
// only ever grows until the final flush.
type dirStack struct {
	headers []*FileHeader
}

func newDirStack() *dirStack {
	return &dirStack{}
}

// push retains h for later, taking a reference so it survives past the
// reader moving on to later entries.
func (s *dirStack) push(h *FileHeader) {
	s.headers = append(s.headers, h.AddRef())
}

func (s *dirStack) top() *FileHeader {
	if len(s.headers) == 0 {
		return nil
	}
	return s.headers[len(s.headers)-1]
}

func (s *dirStack) pop() *FileHeader {
	n := len(s.headers)
	if n == 0 {
		return nil
	}
	h := s.headers[n-1]
	s.headers = s.headers[:n-1]
	return h
}

// drain releases every remaining header, for use when the reader is
// abandoned before the stack empties on its own.
func (s *dirStack) drain() {
	for _, h := range s.headers {
		h.Release()
	}
	s.headers = nil
}

// endOfTopDir reports whether the directory at the top of the stack has
// reached the end of its scope, given the header of the next entry about
// to be yielded (nil once the underlying archive is exhausted).
func endOfTopDir(policy DirPolicy, top, next *FileHeader) bool {
	if top == nil {
		return false
	}
	if next == nil {
		return true
	}

	switch policy {
	case DirPolicyEndOfFile:
		return false
	case DirPolicyEndOfDir:
		return next.Path == "" || !strings.HasPrefix(next.Path, top.Path)
	default:
		// DirPolicyPlain never pushes onto the stack, so reaching here
		// would mean a caller switched policy mid-archive with entries
		// already on the stack; pop immediately rather than leak them.
		return true
	}
}
