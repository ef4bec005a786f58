package myload

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or arguments
	ExitConnectionError = 11 // Failed to connect to database
	ExitLoadFailed      = 13 // LOAD DATA statement rejected
	ExitStagingFailed   = 14 // Temp file could not be written
	ExitUnsupported     = 15 // Built with -tags nomysql
)

const (
	// DefaultPort is the standard MySQL server port.
	DefaultPort = 3306

	// StagingPattern names staging files. os.CreateTemp replaces the last
	// '*' with a random string, so the .csv suffix is preserved.
	StagingPattern = "myload_mysql_*.csv"

	// FloatPrecision is the number of significant digits written per value
	// by the numeric column loader.
	FloatPrecision = 10
)
