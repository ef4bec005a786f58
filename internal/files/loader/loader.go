package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/vvka-141/myload/internal/files/filesystem"
	"github.com/vvka-141/myload/pkg/myload"
)

// ErrEmptyInput is returned for an input file with no content.
var ErrEmptyInput = errors.New("input file is empty")

// Loader reads CLI input files.
type Loader struct {
	fs filesystem.FileSystemProvider
}

// NewLoader creates a Loader over the given filesystem.
func NewLoader(fsProvider filesystem.FileSystemProvider) *Loader {
	if fsProvider == nil {
		panic("filesystem provider cannot be nil")
	}
	return &Loader{fs: fsProvider}
}

// ReadCSV returns the bytes of path. Empty files and directories are
// rejected; the content itself is not inspected.
func (l *Loader) ReadCSV(path string) ([]byte, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, describeOpenError(path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, myload.ErrInvalidArgument)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, describeOpenError(path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrEmptyInput, myload.ErrInvalidArgument)
	}
	return data, nil
}

// ReadValues parses path as one float per line. Blank lines and '#'
// comments are skipped. A file with no values is rejected.
func (l *Loader) ReadValues(path string) ([]float64, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, describeOpenError(path, err)
	}

	values, err := ParseValues(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

// ParseValues parses one float per line. Leading and trailing whitespace
// and a trailing '\r' are ignored.
func ParseValues(data []byte) ([]float64, error) {
	var values []float64
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q is not a number: %w", line, text, myload.ErrInvalidArgument)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("line %d: %s cannot be stored in MySQL: %w", line, text, myload.ErrInvalidArgument)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w: %w", line+1, myload.ErrInvalidArgument, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no values: %w: %w", ErrEmptyInput, myload.ErrInvalidArgument)
	}
	return values, nil
}

func describeOpenError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("input file %s does not exist: %w", path, myload.ErrInvalidArgument)
	}
	return fmt.Errorf("failed to read %s: %w", path, err)
}
