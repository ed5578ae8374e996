// Package file provides a file-based Fetcher implementation for the env
// package.
//
// The Fetcher reads the file lazily on every Fetch call, so a caller that
// retries after a transient failure sees the file's current contents. The
// path is cleaned at construction; Fetch rejects directories.
//
// Usage:
//
//	fetcher := file.NewFetcher("/path/to/.env")
//	text, err := fetcher.Fetch()
//
// Error handling:
//   - Fetch returns an error if the file cannot be read or the path is a
//     directory; errors include the path for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directories
package file
