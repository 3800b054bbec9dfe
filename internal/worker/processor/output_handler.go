package processor

import (
	"context"
	"fmt"
	"os"

	"github.com/h2non/filetype"

	"vidmark/internal/adapters/signedurl"
	"vidmark/internal/pkg/errors"
	"vidmark/internal/ports"
)

const defaultVideoType = "video/mp4"

type OutputHandler struct {
	store    ports.ObjectStore
	transfer *signedurl.Client
}

func NewOutputHandler(store ports.ObjectStore, transfer *signedurl.Client) *OutputHandler {
	return &OutputHandler{store: store, transfer: transfer}
}

// Upload writes the output file to the job's destination and returns the
// processed path to report. Uploads are not retried.
func (oh *OutputHandler) Upload(ctx context.Context, job Job, output string) (string, error) {
	st, err := os.Stat(output)
	if err != nil {
		return "", errors.Upload(err, "processor.upload", "output file not found")
	}

	f, err := os.Open(output)
	if err != nil {
		return "", errors.Upload(err, "processor.upload", "failed to open output")
	}
	defer f.Close()

	contentType := sniffContentType(output)

	if job.Dest.URL != "" {
		if err := oh.transfer.Upload(ctx, job.Dest.URL, f, st.Size(), contentType); err != nil {
			return "", errors.Upload(err, "processor.upload", "failed to upload processed video")
		}
		return job.Dest.Path, nil
	}

	if oh.store == nil {
		return "", errors.Upload(fmt.Errorf("no object store configured for %s", job.Dest.Ref), "processor.upload", "failed to upload processed video")
	}

	out, err := oh.store.PutObject(ctx, ports.PutObjectInput{
		Ref:         job.Dest.Ref,
		ContentType: contentType,
		Reader:      f,
		Size:        st.Size(),
	})
	if err != nil {
		return "", errors.Upload(err, "processor.upload", "failed to upload processed video")
	}

	if out.Key != "" {
		return out.Key, nil
	}
	return job.Dest.Path, nil
}

func sniffContentType(p string) string {
	kind, err := filetype.MatchFile(p)
	if err != nil || kind == filetype.Unknown || kind.MIME.Value == "" {
		return defaultVideoType
	}
	return kind.MIME.Value
}
