package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/myload/internal/files/filesystem"
	"github.com/vvka-141/myload/internal/logging"
	"github.com/vvka-141/myload/internal/staging"
	"github.com/vvka-141/myload/pkg/myload"
)

func validConn() myload.ConnectionConfig {
	return myload.ConnectionConfig{Host: "localhost", Username: "loader", Database: "shop"}
}

type uploaderFixture struct {
	fs        *countingFS
	connector *mockConnector
	factories int
	logs      *bytes.Buffer
	svc       *UploadService
}

func newFixture(t *testing.T) *uploaderFixture {
	t.Helper()
	f := &uploaderFixture{fs: newCountingFS(), logs: &bytes.Buffer{}}
	f.connector = &mockConnector{fs: f.fs, rows: 2}
	f.svc = NewUploadService(
		factoryFor(f.connector, &f.factories),
		staging.NewStager(f.fs, ""),
		logging.NewWriterLogger(f.logs, true),
	)
	return f
}

func TestNewUploadService_PanicsOnNil(t *testing.T) {
	stager := staging.NewStager(newCountingFS(), "")
	logger := logging.NewNullLogger()
	factory := func(*myload.ConnectionConfig) (myload.Connector, error) { return nil, nil }

	assert.Panics(t, func() { NewUploadService(nil, stager, logger) })
	assert.Panics(t, func() { NewUploadService(factory, nil, logger) })
	assert.Panics(t, func() { NewUploadService(factory, stager, nil) })
}

func TestUploadCSV_Success(t *testing.T) {
	f := newFixture(t)
	data := []byte("id,name\n1,\"a\"\n2,\"b\"\n")

	result, err := f.svc.UploadCSV(context.Background(), validConn(), myload.CSVUpload{Table: "items", Data: data})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.RowsAffected)
	assert.NotEmpty(t, result.LoadID)
	assert.Regexp(t, `^/tmp/myload_mysql_\d+\.csv$`, result.StagingPath)

	s := f.connector.session
	require.NotNil(t, s)
	assert.Equal(t, result.StagingPath, s.path)
	assert.Equal(t, data, s.content, "staged file must hold the buffer verbatim")
	assert.Equal(t,
		"LOAD DATA LOCAL INFILE ? INTO TABLE `items` FIELDS TERMINATED BY ',' ENCLOSED BY '\"' LINES TERMINATED BY '\\n' IGNORE 1 ROWS",
		s.query)
	assert.True(t, s.closed)
	assert.Empty(t, f.fs.Paths(), "staging file must be removed")
	assert.Contains(t, f.logs.String(), "inserted 2 rows")
}

func TestUploadCSV_EmptyBuffer(t *testing.T) {
	f := newFixture(t)
	f.connector.rows = 0

	result, err := f.svc.UploadCSV(context.Background(), validConn(), myload.CSVUpload{Table: "items"})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.RowsAffected)
	assert.Empty(t, f.connector.session.content)
	assert.Empty(t, f.fs.Paths())
}

func TestUploadColumn_Success(t *testing.T) {
	f := newFixture(t)
	f.connector.rows = 3

	result, err := f.svc.UploadColumn(context.Background(), validConn(), myload.ColumnUpload{
		Table:  "measurements",
		Column: "value",
		Values: []float64{1.5, -2.0, 3.333333333},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.RowsAffected)
	s := f.connector.session
	assert.Equal(t, "1.5\n-2\n3.333333333\n", string(s.content))
	assert.Equal(t,
		"LOAD DATA LOCAL INFILE ? INTO TABLE `measurements` FIELDS TERMINATED BY ',' LINES TERMINATED BY '\\n' (`value`)",
		s.query)
	assert.True(t, s.closed)
	assert.Empty(t, f.fs.Paths())
}

func TestUpload_ArgumentErrorsPerformNoIO(t *testing.T) {
	tests := []struct {
		name string
		run  func(svc *UploadService) error
	}{
		{"csv empty host", func(svc *UploadService) error {
			conn := validConn()
			conn.Host = ""
			_, err := svc.UploadCSV(context.Background(), conn, myload.CSVUpload{Table: "t", Data: []byte("a\n")})
			return err
		}},
		{"csv empty user", func(svc *UploadService) error {
			conn := validConn()
			conn.Username = ""
			_, err := svc.UploadCSV(context.Background(), conn, myload.CSVUpload{Table: "t"})
			return err
		}},
		{"csv empty database", func(svc *UploadService) error {
			conn := validConn()
			conn.Database = ""
			_, err := svc.UploadCSV(context.Background(), conn, myload.CSVUpload{Table: "t"})
			return err
		}},
		{"csv empty table", func(svc *UploadService) error {
			_, err := svc.UploadCSV(context.Background(), validConn(), myload.CSVUpload{Data: []byte("a\n")})
			return err
		}},
		{"csv placeholder in table", func(svc *UploadService) error {
			_, err := svc.UploadCSV(context.Background(), validConn(), myload.CSVUpload{Table: "t?", Data: []byte("a\n")})
			return err
		}},
		{"column placeholder in column", func(svc *UploadService) error {
			_, err := svc.UploadColumn(context.Background(), validConn(), myload.ColumnUpload{Table: "t", Column: "c?", Values: []float64{1}})
			return err
		}},
		{"column empty column", func(svc *UploadService) error {
			_, err := svc.UploadColumn(context.Background(), validConn(), myload.ColumnUpload{Table: "t", Values: []float64{1}})
			return err
		}},
		{"column empty table", func(svc *UploadService) error {
			_, err := svc.UploadColumn(context.Background(), validConn(), myload.ColumnUpload{Column: "c"})
			return err
		}},
		{"column empty host", func(svc *UploadService) error {
			conn := validConn()
			conn.Host = ""
			_, err := svc.UploadColumn(context.Background(), conn, myload.ColumnUpload{Table: "t", Column: "c"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			err := tt.run(f.svc)

			require.Error(t, err)
			assert.ErrorIs(t, err, myload.ErrInvalidArgument)
			assert.Equal(t, myload.ExitConfigError, myload.ExitCodeForError(err))
			assert.Zero(t, f.fs.creates, "no filesystem access expected")
			assert.Zero(t, f.fs.removes, "no filesystem access expected")
			assert.Zero(t, f.factories, "no connector expected")
			assert.Zero(t, f.connector.connects, "no connection expected")
			assert.Contains(t, f.logs.String(), "[ERROR]")
		})
	}
}

func TestUpload_ConnectFailureRemovesStagingFile(t *testing.T) {
	f := newFixture(t)
	f.connector.connectErr = fmt.Errorf("dial tcp: %w", myload.ErrConnectionFailed)

	result, err := f.svc.UploadCSV(context.Background(), validConn(), myload.CSVUpload{Table: "t", Data: []byte("h\n1\n")})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, myload.ErrConnectionFailed)
	assert.Equal(t, 1, f.fs.creates)
	assert.Empty(t, f.fs.Paths(), "staging file must be removed after connect failure")
	assert.Contains(t, f.logs.String(), "csv load into t failed")
}

func TestUpload_QueryFailureClosesSessionAndRemovesFile(t *testing.T) {
	f := newFixture(t)
	f.connector.loadErr = fmt.Errorf("Error 1146: %w", myload.ErrQueryFailed)

	_, err := f.svc.UploadColumn(context.Background(), validConn(), myload.ColumnUpload{Table: "t", Column: "c", Values: []float64{1, 2}})

	require.Error(t, err)
	assert.ErrorIs(t, err, myload.ErrQueryFailed)
	assert.True(t, f.connector.session.closed, "session must be closed after query failure")
	assert.Empty(t, f.fs.Paths(), "staging file must be removed after query failure")
}

func TestUpload_ConnectorFactoryFailure(t *testing.T) {
	fs := newCountingFS()
	factoryErr := fmt.Errorf("aws region missing: %w", myload.ErrInvalidConfig)
	svc := NewUploadService(
		func(*myload.ConnectionConfig) (myload.Connector, error) { return nil, factoryErr },
		staging.NewStager(fs, ""),
		logging.NewNullLogger(),
	)

	_, err := svc.UploadCSV(context.Background(), validConn(), myload.CSVUpload{Table: "t"})

	assert.ErrorIs(t, err, myload.ErrInvalidConfig)
	assert.Zero(t, fs.creates)
}

type failingCreateFS struct{ *countingFS }

func (f failingCreateFS) CreateTemp(dir, pattern string) (filesystem.WritableFile, error) {
	return nil, errors.New("disk full")
}

func TestUpload_StagingFailureSkipsConnect(t *testing.T) {
	fs := newCountingFS()
	connector := &mockConnector{fs: fs}
	calls := 0
	svc := NewUploadService(
		factoryFor(connector, &calls),
		staging.NewStager(failingCreateFS{fs}, ""),
		logging.NewNullLogger(),
	)

	_, err := svc.UploadCSV(context.Background(), validConn(), myload.CSVUpload{Table: "t", Data: []byte("x")})

	require.Error(t, err)
	assert.ErrorIs(t, err, myload.ErrStagingFailed)
	assert.Equal(t, myload.ExitStagingFailed, myload.ExitCodeForError(err))
	assert.Zero(t, connector.connects)
	assert.Empty(t, fs.Paths())
}

func TestUpload_ConcurrentCallsUseDistinctFiles(t *testing.T) {
	fs := newCountingFS()
	stager := staging.NewStager(fs, "")

	factory := func(*myload.ConnectionConfig) (myload.Connector, error) {
		return &mockConnector{fs: fs, rows: 1}, nil
	}
	svc := NewUploadService(factory, stager, logging.NewNullLogger())

	type outcome struct {
		path string
		err  error
	}
	outcomes := make(chan outcome, 8)
	for i := 0; i < 8; i++ {
		go func() {
			res, err := svc.UploadCSV(context.Background(), validConn(), myload.CSVUpload{Table: "t", Data: []byte("h\n1\n")})
			if err != nil {
				outcomes <- outcome{err: err}
				return
			}
			outcomes <- outcome{path: res.StagingPath}
		}()
	}

	seen := map[string]bool{}
	for i := 0; i < 8; i++ {
		o := <-outcomes
		if !assert.NoError(t, o.err) {
			continue
		}
		assert.False(t, seen[o.path], "staging path %s reused", o.path)
		seen[o.path] = true
	}
	assert.Empty(t, fs.Paths())
}

func TestUnsupportedUploader(t *testing.T) {
	var logs bytes.Buffer
	u := NewUnsupportedUploader(logging.NewWriterLogger(&logs, false))

	_, err := u.UploadCSV(context.Background(), validConn(), myload.CSVUpload{Table: "t", Data: []byte("h\n1\n")})
	assert.ErrorIs(t, err, myload.ErrUnsupported)

	_, err = u.UploadColumn(context.Background(), validConn(), myload.ColumnUpload{Table: "t", Column: "c", Values: []float64{1}})
	assert.ErrorIs(t, err, myload.ErrUnsupported)
	assert.Equal(t, myload.ExitUnsupported, myload.ExitCodeForError(err))

	assert.Contains(t, logs.String(), "mysql support not compiled in")
}
