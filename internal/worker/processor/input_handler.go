package processor

import (
	"context"
	"fmt"
	"io"
	"os"

	"vidmark/internal/adapters/signedurl"
	"vidmark/internal/pkg/errors"
	"vidmark/internal/ports"
)

type InputHandler struct {
	store    ports.ObjectStore
	transfer *signedurl.Client
}

func NewInputHandler(store ports.ObjectStore, transfer *signedurl.Client) *InputHandler {
	return &InputHandler{store: store, transfer: transfer}
}

// Inputs are the local copies the transform stage reads.
type Inputs struct {
	Video string
	Logo  string
}

// Fetch streams the source video, and the logo when the job has one, into
// scratch files. Any failure is a FetchError.
func (ih *InputHandler) Fetch(ctx context.Context, job Job, scratch *Scratch) (Inputs, error) {
	var in Inputs

	var (
		rc  io.ReadCloser
		err error
	)
	if job.Source.URL != "" {
		in.Video = scratch.Path("input", extOf(job.Source.URL, ".mp4"))
		rc, err = ih.transfer.Download(ctx, job.Source.URL)
	} else {
		in.Video = scratch.Path("input", extOf(job.Source.Ref.Key, ".mp4"))
		rc, err = ih.getObject(ctx, job.Source.Ref)
	}
	if err != nil {
		return in, errors.Fetch(err, "processor.fetch", "failed to download source video")
	}
	if err := saveToFile(in.Video, rc); err != nil {
		return in, errors.Fetch(err, "processor.fetch", "failed to save source video")
	}

	logo, ok := job.Overlay.(LogoOverlay)
	if !ok {
		return in, nil
	}

	in.Logo = scratch.Path("logo", extOf(logo.URL, ".png"))
	rc, err = ih.transfer.Download(ctx, logo.URL)
	if err != nil {
		return in, errors.Fetch(err, "processor.fetch", "failed to download logo")
	}
	if err := saveToFile(in.Logo, rc); err != nil {
		return in, errors.Fetch(err, "processor.fetch", "failed to save logo")
	}
	return in, nil
}

func (ih *InputHandler) getObject(ctx context.Context, ref ports.ObjectRef) (io.ReadCloser, error) {
	if ih.store == nil {
		return nil, fmt.Errorf("no object store configured for %s", ref)
	}
	rc, _, _, err := ih.store.GetObject(ctx, ref)
	return rc, err
}

// saveToFile copies rc into a new file at p and closes rc.
func saveToFile(p string, rc io.ReadCloser) error {
	defer rc.Close()

	f, err := os.Create(p)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
