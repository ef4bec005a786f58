// Package filesystem abstracts the few filesystem operations myload performs:
// reading input files, and creating, writing and removing staging files.
//
// Two implementations are provided:
//   - OSFileSystem: the real filesystem
//   - MemoryFileSystem: an in-memory filesystem for tests that must not touch disk
//
// Both are safe for concurrent use.
package filesystem
