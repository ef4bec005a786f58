package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/myload/pkg/myload"
)

// UnsupportedUploader is the myload.Uploader of a build without MySQL
// support. Every call fails with myload.ErrUnsupported and performs no I/O.
type UnsupportedUploader struct {
	logger myload.Logger
}

// NewUnsupportedUploader creates an UnsupportedUploader reporting to logger.
func NewUnsupportedUploader(logger myload.Logger) *UnsupportedUploader {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &UnsupportedUploader{logger: logger}
}

// UploadCSV fails with myload.ErrUnsupported.
func (u *UnsupportedUploader) UploadCSV(ctx context.Context, conn myload.ConnectionConfig, req myload.CSVUpload) (*myload.LoadResult, error) {
	return nil, u.fail("csv")
}

// UploadColumn fails with myload.ErrUnsupported.
func (u *UnsupportedUploader) UploadColumn(ctx context.Context, conn myload.ConnectionConfig, req myload.ColumnUpload) (*myload.LoadResult, error) {
	return nil, u.fail("column")
}

func (u *UnsupportedUploader) fail(kind string) error {
	err := fmt.Errorf("%s upload: %w", kind, myload.ErrUnsupported)
	u.logger.Error("%v", err)
	return err
}

var (
	_ myload.Uploader = (*UploadService)(nil)
	_ myload.Uploader = (*UnsupportedUploader)(nil)
)
