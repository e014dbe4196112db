// Package blob stores uploaded file bytes. The local backend writes under
// an uploads directory served statically; the R2 backend keeps objects in
// a bucket and hands out presigned download URLs.
package blob

import (
	"context"
	"io"
)

// Object describes stored bytes.
type Object struct {
	// URL is the stable location recorded on the file record.
	URL  string
	Size int64
}

// Store saves and serves uploaded bytes.
type Store interface {
	// Save persists the reader's contents under a unique key derived
	// from name.
	Save(ctx context.Context, name string, r io.Reader) (*Object, error)
	// DownloadURL resolves a stored URL to something a client can fetch,
	// e.g. a presigned URL for bucket-backed storage.
	DownloadURL(ctx context.Context, storedURL string) (string, error)
	// Remove deletes the stored bytes behind a URL. Missing objects are
	// not an error.
	Remove(ctx context.Context, storedURL string) error
}
