// Package files groups the filesystem-facing packages of myload.
//
//   - filesystem: a provider interface with OS and in-memory implementations
//   - loader: reads the CSV and values input files named on the command line
//
// Staging files written for LOAD DATA live in internal/staging and use the
// same filesystem provider.
package files
