package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// WritableFile is a newly created file opened for writing.
// *os.File satisfies it.
type WritableFile interface {
	io.Writer

	// Name returns the full path of the file
	Name() string

	// Sync flushes written data to stable storage
	Sync() error

	// Close closes the file. It does not remove it.
	Close() error
}

// FileSystemProvider is the filesystem seam used by the loader and the CLI.
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// CreateTemp atomically creates a new, uniquely named file in dir.
	// The last '*' in pattern is replaced by a random string. An empty dir
	// means TempDir().
	CreateTemp(dir, pattern string) (WritableFile, error)

	// Remove deletes the named file
	Remove(path string) error

	// TempDir returns the default directory for CreateTemp
	TempDir() string
}
