package gdrive

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"vidmark/internal/ports"
)

// Client implements ports.ObjectStore backed by Google Drive.
//
// Drive has no buckets. Uploads land in the configured folder, or in the folder
// whose id is the bucket when none is configured, named after the key. Reads
// and deletes address files by Drive file id, which PutObject returns as Key.
type Client struct {
	srv      *drive.Service
	folderID string
}

func NewClient(srv *drive.Service, folderID string) *Client {
	return &Client{srv: srv, folderID: folderID}
}

func (c *Client) Provider() string { return "gdrive" }

func (c *Client) PutObject(ctx context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	if in.Ref.Key == "" {
		return ports.PutObjectOutput{}, fmt.Errorf("object key is required")
	}

	file := &drive.File{Name: in.Ref.Key}
	if parent := c.parent(in.Ref.Bucket); parent != "" {
		file.Parents = []string{parent}
	}

	call := c.srv.Files.Create(file).SupportsAllDrives(true)
	if in.ContentType != "" {
		call = call.Media(in.Reader, googleapi.ContentType(in.ContentType))
	} else {
		call = call.Media(in.Reader)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return ports.PutObjectOutput{}, fmt.Errorf("gdrive upload failed: %w", err)
	}

	return ports.PutObjectOutput{Key: created.Id, Size: in.Size}, nil
}

func (c *Client) GetObject(ctx context.Context, ref ports.ObjectRef) (rc io.ReadCloser, contentType string, size int64, err error) {
	resp, err := c.srv.Files.Get(ref.Key).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, "", 0, fmt.Errorf("gdrive download %s failed: %w", ref.Key, err)
	}

	return resp.Body, resp.Header.Get("Content-Type"), resp.ContentLength, nil
}

func (c *Client) parent(bucket string) string {
	if c.folderID != "" {
		return c.folderID
	}
	return bucket
}
