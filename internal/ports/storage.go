package ports

import (
	"context"
	"io"
)

// ObjectRef addresses one object in direct mode.
type ObjectRef struct {
	Bucket string
	Key    string
}

func (r ObjectRef) String() string {
	return r.Bucket + "/" + r.Key
}

type PutObjectInput struct {
	Ref         ObjectRef
	ContentType string
	Reader      io.Reader
	Size        int64
}

type PutObjectOutput struct {
	// Key the object can be read back with. Providers that assign their own
	// ids (gdrive) return that id here.
	Key  string
	Size int64
}

// ObjectStore is the direct-mode storage contract (localfs, s3, gdrive).
type ObjectStore interface {
	Provider() string

	PutObject(ctx context.Context, in PutObjectInput) (PutObjectOutput, error)
	GetObject(ctx context.Context, ref ObjectRef) (rc io.ReadCloser, contentType string, size int64, err error)
}
