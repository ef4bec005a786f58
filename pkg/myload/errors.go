package myload

import (
	"errors"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := uploader.UploadCSV(ctx, conn, req)
//	if errors.Is(err, myload.ErrConnectionFailed) {
//	    // Handle unreachable server
//	}
var (
	// ErrInvalidArgument indicates a required field of a load request is missing.
	// Detected before any filesystem or network access.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConfig indicates the CLI could not resolve a usable configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStagingFailed indicates the temp file could not be created or written.
	ErrStagingFailed = errors.New("staging failed")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrQueryFailed indicates the server rejected the bulk-import statement.
	ErrQueryFailed = errors.New("load statement failed")

	// ErrUnsupported indicates the binary was built without MySQL support.
	ErrUnsupported = errors.New("mysql support not compiled in")

	// ErrUsage indicates the command line itself was malformed.
	ErrUsage = errors.New("usage error")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrUnsupported):
		return ExitUnsupported
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrQueryFailed):
		return ExitLoadFailed
	case errors.Is(err, ErrStagingFailed):
		return ExitStagingFailed
	}

	return ExitGeneralError
}
