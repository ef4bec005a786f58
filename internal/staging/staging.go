// Package staging writes load payloads to uniquely named temp files that the
// MySQL server reads back through LOAD DATA LOCAL INFILE.
package staging

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/vvka-141/myload/internal/files/filesystem"
	"github.com/vvka-141/myload/pkg/myload"
)

// Stager creates staging files in a single directory.
type Stager struct {
	fs  filesystem.FileSystemProvider
	dir string
}

// NewStager returns a Stager writing to dir. An empty dir means the
// provider's temp directory.
func NewStager(fs filesystem.FileSystemProvider, dir string) *Stager {
	if fs == nil {
		panic("filesystem provider cannot be nil")
	}
	return &Stager{fs: fs, dir: dir}
}

// File is a staged payload on disk. The creator owns it and must Remove it.
type File struct {
	fs   filesystem.FileSystemProvider
	path string
	size int64

	once      sync.Once
	removeErr error
}

// Path returns the file's location on the client filesystem.
func (f *File) Path() string { return f.path }

// Size returns the number of bytes written.
func (f *File) Size() int64 { return f.size }

// Remove deletes the file. Safe to call more than once.
func (f *File) Remove() error {
	f.once.Do(func() {
		f.removeErr = f.fs.Remove(f.path)
	})
	return f.removeErr
}

// StageCSV writes data verbatim.
func (s *Stager) StageCSV(data []byte) (*File, error) {
	return s.stage(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// StageValues writes one FormatValue line per value.
func (s *Stager) StageValues(values []float64) (*File, error) {
	return s.stage(func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		buf := make([]byte, 0, 32)
		for _, v := range values {
			buf = AppendValue(buf[:0], v)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		return bw.Flush()
	})
}

// stage creates the file, runs write, and syncs and closes it. On any
// failure the partial file is removed before returning.
func (s *Stager) stage(write func(io.Writer) error) (*File, error) {
	tmp, err := s.fs.CreateTemp(s.dir, myload.StagingPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w: %w", myload.ErrStagingFailed, err)
	}

	cw := &countingWriter{w: tmp}
	werr := write(cw)
	if werr == nil {
		werr = tmp.Sync()
	}
	cerr := tmp.Close()

	if werr != nil || cerr != nil {
		rerr := s.fs.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to write %s: %w: %w", tmp.Name(), myload.ErrStagingFailed, errors.Join(werr, cerr, rerr))
	}

	return &File{fs: s.fs, path: tmp.Name(), size: cw.n}, nil
}

// FormatValue renders v like C's "%.10g": ten significant digits, trailing
// zeros dropped, exponent form only when the exponent is < -4 or >= 10.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', myload.FloatPrecision, 64)
}

// AppendValue appends FormatValue(v) to dst.
func AppendValue(dst []byte, v float64) []byte {
	return strconv.AppendFloat(dst, v, 'g', myload.FloatPrecision, 64)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
