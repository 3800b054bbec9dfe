package localfs

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/h2non/filetype"

	"vidmark/internal/ports"
)

var registerTypes sync.Once

// LocalFS implements ports.ObjectStore on a directory tree: <root>/<bucket>/<key>.
type LocalFS struct {
	root string
}

func New(root string) *LocalFS {
	registerTypes.Do(func() {
		_ = mime.AddExtensionType(".mp4", "video/mp4")
		_ = mime.AddExtensionType(".mov", "video/quicktime")
	})
	return &LocalFS{root: root}
}

func (l *LocalFS) Provider() string { return "localfs" }

func (l *LocalFS) PutObject(ctx context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	dst, err := l.path(in.Ref)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return ports.PutObjectOutput{}, err
	}

	outF, err := os.Create(dst)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}
	defer outF.Close()

	n, err := io.Copy(outF, in.Reader)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}

	return ports.PutObjectOutput{Key: in.Ref.Key, Size: n}, nil
}

func (l *LocalFS) GetObject(ctx context.Context, ref ports.ObjectRef) (rc io.ReadCloser, contentType string, size int64, err error) {
	p, err := l.path(ref)
	if err != nil {
		return nil, "", 0, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, "", 0, err
	}

	if st, statErr := f.Stat(); statErr == nil {
		size = st.Size()
	}

	// Prefer extension-based type. If empty, sniff the header.
	contentType = mime.TypeByExtension(filepath.Ext(p))
	if contentType == "" {
		head := make([]byte, 261)
		n, _ := f.Read(head)
		_, _ = f.Seek(0, io.SeekStart)
		if kind, _ := filetype.Match(head[:n]); kind != filetype.Unknown {
			contentType = kind.MIME.Value
		}
	}

	return f, contentType, size, nil
}

// path resolves ref under root and refuses keys that escape it.
func (l *LocalFS) path(ref ports.ObjectRef) (string, error) {
	if ref.Bucket == "" || ref.Key == "" {
		return "", fmt.Errorf("bucket and key are required")
	}
	root := filepath.Clean(l.root)
	p := filepath.Join(root, filepath.FromSlash(ref.Bucket), filepath.FromSlash(ref.Key))
	if !strings.HasPrefix(p, root+string(filepath.Separator)) {
		return "", fmt.Errorf("object %s escapes storage root", ref)
	}
	return p, nil
}
