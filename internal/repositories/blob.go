package repositories

import "errors"

// ErrBlobNotFound is returned by blob stores when no object has the name.
var ErrBlobNotFound = errors.New("blob not found")

// PutOptions describes an object being written to a blob store.
type PutOptions struct {
	ContentType string
	// Size is the body length in bytes, or -1 when unknown.
	Size     int64
	Metadata map[string]string
}

// BlobInfo is what a blob store knows about a stored object.
type BlobInfo struct {
	Size        int64
	ContentType string
}
