// Package loader reads the input files given to the myload CLI.
//
// A CSV input is read whole and passed on untouched. A values input holds
// one number per line; blank lines and lines starting with '#' are skipped.
// Both readers go through a filesystem.FileSystemProvider so they can be
// exercised against an in-memory filesystem.
package loader
