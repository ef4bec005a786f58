package filesystem

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return 0600 }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile is the stored form of a file
type memoryFile struct {
	content []byte
	modTime time.Time
}

// memoryHandle implements WritableFile. Writes become visible on Close.
type memoryHandle struct {
	fs     *MemoryFileSystem
	name   string
	buf    bytes.Buffer
	closed bool
}

func (h *memoryHandle) Name() string { return h.name }

func (h *memoryHandle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, fmt.Errorf("write %s: %w", h.name, fs.ErrClosed)
	}
	return h.buf.Write(p)
}

func (h *memoryHandle) Sync() error {
	if h.closed {
		return fmt.Errorf("sync %s: %w", h.name, fs.ErrClosed)
	}
	return nil
}

func (h *memoryHandle) Close() error {
	if h.closed {
		return fmt.Errorf("close %s: %w", h.name, fs.ErrClosed)
	}
	h.closed = true
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()
	if f, ok := h.fs.files[h.name]; ok {
		f.content = append([]byte(nil), h.buf.Bytes()...)
		f.modTime = time.Now()
	}
	return nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing
type MemoryFileSystem struct {
	mu      sync.Mutex
	files   map[string]*memoryFile
	tempDir string
	seq     int
}

// NewMemoryFileSystem creates a new in-memory filesystem whose TempDir is tempDir.
func NewMemoryFileSystem(tempDir string) *MemoryFileSystem {
	return &MemoryFileSystem{
		files:   make(map[string]*memoryFile),
		tempDir: path.Clean(tempDir),
	}
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[path.Clean(filePath)] = &memoryFile{content: []byte(content), modTime: time.Now()}
}

// Paths returns every stored path in sorted order.
func (mfs *MemoryFileSystem) Paths() []string {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	paths := make([]string, 0, len(mfs.files))
	for p := range mfs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	f, ok := mfs.files[path.Clean(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f.content...), nil
}

func (mfs *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	clean := path.Clean(filePath)
	f, ok := mfs.files[clean]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
	}
	return &memoryFileInfo{name: path.Base(clean), size: int64(len(f.content)), modTime: f.modTime}, nil
}

// CreateTemp mirrors os.CreateTemp naming with a sequence number in place of
// the random part.
func (mfs *MemoryFileSystem) CreateTemp(dir, pattern string) (WritableFile, error) {
	if dir == "" {
		dir = mfs.tempDir
	}
	if strings.Contains(pattern, "/") {
		return nil, &fs.PathError{Op: "createtemp", Path: pattern, Err: fs.ErrInvalid}
	}
	prefix, suffix := pattern, ""
	if i := strings.LastIndex(pattern, "*"); i >= 0 {
		prefix, suffix = pattern[:i], pattern[i+1:]
	}

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	for {
		mfs.seq++
		name := path.Join(dir, fmt.Sprintf("%s%06d%s", prefix, mfs.seq, suffix))
		if _, exists := mfs.files[name]; exists {
			continue
		}
		mfs.files[name] = &memoryFile{modTime: time.Now()}
		return &memoryHandle{fs: mfs, name: name}, nil
	}
}

func (mfs *MemoryFileSystem) Remove(filePath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	clean := path.Clean(filePath)
	if _, ok := mfs.files[clean]; !ok {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}
	delete(mfs.files, clean)
	return nil
}

func (mfs *MemoryFileSystem) TempDir() string {
	return mfs.tempDir
}
