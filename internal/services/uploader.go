package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vvka-141/myload/internal/db"
	"github.com/vvka-141/myload/internal/files/filesystem"
	"github.com/vvka-141/myload/internal/staging"
	"github.com/vvka-141/myload/pkg/myload"
)

// UploadService implements myload.Uploader on top of a Connector and a
// Stager. Each call owns its staging file and its connection; calls share
// no mutable state, so one instance may serve concurrent uploads.
type UploadService struct {
	connectorFactory myload.ConnectorFactory
	stager           *staging.Stager
	logger           myload.Logger
}

// NewUploadService creates an UploadService with all dependencies injected.
// Panics if any dependency is nil.
func NewUploadService(
	connectorFactory myload.ConnectorFactory,
	stager *staging.Stager,
	logger myload.Logger,
) *UploadService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if stager == nil {
		panic("stager cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &UploadService{
		connectorFactory: connectorFactory,
		stager:           stager,
		logger:           logger,
	}
}

// NewDefaultUploader returns the uploader this binary supports: an
// UploadService over the MySQL driver, or an UnsupportedUploader when built
// with -tags nomysql. stagingDir may be empty for the system temp directory.
func NewDefaultUploader(logger myload.Logger, fs filesystem.FileSystemProvider, stagingDir string) myload.Uploader {
	if !db.Supported {
		return NewUnsupportedUploader(logger)
	}
	return NewUploadService(db.NewConnectorFactory(logger), staging.NewStager(fs, stagingDir), logger)
}

// loadJob is what differs between the CSV and the numeric column path.
type loadJob struct {
	kind      string
	table     string
	stage     func() (*staging.File, error)
	statement string
}

// UploadCSV stages req.Data verbatim and loads it, skipping the header row.
func (s *UploadService) UploadCSV(ctx context.Context, conn myload.ConnectionConfig, req myload.CSVUpload) (*myload.LoadResult, error) {
	if err := errors.Join(conn.Validate(), req.Validate()); err != nil {
		s.logger.Error("csv upload rejected: %v", err)
		return nil, err
	}

	return s.load(ctx, &conn, loadJob{
		kind:  "csv",
		table: req.Table,
		stage: func() (*staging.File, error) {
			return s.stager.StageCSV(req.Data)
		},
		statement: db.CSVLoadStatement(req.Table),
	})
}

// UploadColumn stages one line per value and loads them into req.Column.
func (s *UploadService) UploadColumn(ctx context.Context, conn myload.ConnectionConfig, req myload.ColumnUpload) (*myload.LoadResult, error) {
	if err := errors.Join(conn.Validate(), req.Validate()); err != nil {
		s.logger.Error("column upload rejected: %v", err)
		return nil, err
	}

	return s.load(ctx, &conn, loadJob{
		kind:  "column",
		table: req.Table,
		stage: func() (*staging.File, error) {
			return s.stager.StageValues(req.Values)
		},
		statement: db.ColumnLoadStatement(req.Table, req.Column),
	})
}

// load runs STAGE -> CONNECT -> QUERY. The staging file and the session are
// released by defers, so cleanup happens on every return path.
func (s *UploadService) load(ctx context.Context, conn *myload.ConnectionConfig, job loadJob) (result *myload.LoadResult, err error) {
	loadID := uuid.NewString()
	defer func() {
		if err != nil {
			s.logger.Error("[%s] %s load into %s failed: %v", loadID, job.kind, job.table, err)
		}
	}()

	connector, err := s.connectorFactory(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	file, err := job.stage()
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := file.Remove(); rerr != nil {
			s.logger.Error("[%s] failed to remove staging file %s: %v", loadID, file.Path(), rerr)
		}
	}()
	s.logger.Verbose("[%s] staged %d bytes at %s", loadID, file.Size(), file.Path())

	s.logger.Verbose("[%s] connecting to %s/%s as %s (%s)", loadID, conn.Address(), conn.Database, conn.Username, conn.AuthMethod)
	session, err := connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			s.logger.Verbose("[%s] closing connection: %v", loadID, cerr)
		}
	}()

	s.logger.Verbose("[%s] executing: %s [%s]", loadID, job.statement, file.Path())
	rows, err := session.LoadLocalFile(ctx, file.Path(), job.statement)
	if err != nil {
		return nil, err
	}

	s.logger.Info("inserted %d rows", rows)
	return &myload.LoadResult{
		LoadID:       loadID,
		RowsAffected: rows,
		StagingPath:  file.Path(),
	}, nil
}
