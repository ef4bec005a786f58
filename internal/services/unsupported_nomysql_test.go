//go:build nomysql

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/myload/internal/files/filesystem"
	"github.com/vvka-141/myload/internal/logging"
	"github.com/vvka-141/myload/internal/services"
	"github.com/vvka-141/myload/pkg/myload"
)

func TestDefaultUploader_WithoutMySQL(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/tmp")
	uploader := services.NewDefaultUploader(logging.NewNullLogger(), fs, "")
	require.IsType(t, &services.UnsupportedUploader{}, uploader)

	conn := myload.ConnectionConfig{Host: "localhost", Username: "loader", Database: "shop"}

	_, err := uploader.UploadCSV(context.Background(), conn, myload.CSVUpload{Table: "t", Data: []byte("id\n1\n")})
	assert.ErrorIs(t, err, myload.ErrUnsupported)

	_, err = uploader.UploadColumn(context.Background(), conn, myload.ColumnUpload{Table: "t", Column: "c", Values: []float64{1}})
	assert.ErrorIs(t, err, myload.ErrUnsupported)

	_, err = uploader.UploadCSV(context.Background(), myload.ConnectionConfig{}, myload.CSVUpload{})
	assert.ErrorIs(t, err, myload.ErrUnsupported, "unsupported wins over argument errors")

	assert.Empty(t, fs.Paths())
}
