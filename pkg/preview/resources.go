package preview

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrStoreClosed is returned by Swap after Close.
var ErrStoreClosed = errors.New("preview resource store is closed")

// ResourceStore holds at most one live preview image on disk. Swapping
// in a new one releases the old file.
type ResourceStore struct {
	mu      sync.Mutex
	dir     string
	pattern string
	live    string
	closed  bool
}

// NewResourceStore creates a store writing into dir (os.TempDir when empty).
func NewResourceStore(dir string) *ResourceStore {
	return &ResourceStore{dir: dir, pattern: "certadmin-preview-*.png"}
}

// Swap writes data to a fresh file, makes it the live handle and
// releases the previous one.
func (s *ResourceStore) Swap(data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	f, err := os.CreateTemp(s.dir, s.pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create preview file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write preview file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close preview file: %w", err)
	}

	previous := s.live
	s.live = f.Name()
	if previous != "" {
		os.Remove(previous)
	}
	return s.live, nil
}

// Live returns the path of the live handle, or "".
func (s *ResourceStore) Live() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Release drops the live handle.
func (s *ResourceStore) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release()
}

func (s *ResourceStore) release() {
	if s.live != "" {
		os.Remove(s.live)
		s.live = ""
	}
}

// Close releases the live handle and refuses further swaps.
func (s *ResourceStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release()
	s.closed = true
}
