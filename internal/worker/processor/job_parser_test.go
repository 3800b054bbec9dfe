package processor

import (
	"testing"

	"vidmark/internal/config"
	"vidmark/internal/pkg/errors"
	"vidmark/internal/ports"
)

func parserConfig(mode config.AddressingMode) config.Config {
	return config.Config{
		Mode:          mode,
		WatermarkText: "Made with Sora AI",
		LogoWidth:     120,
		InputBucket:   "uploads",
		OutputBucket:  "processed",
	}
}

func TestParseSignedURL(t *testing.T) {
	jp := NewJobParser(parserConfig(config.ModeSignedURL))

	job, err := jp.Parse(JobRequest{
		VideoID:        " v1 ",
		DownloadURL:    "http://x/a.mp4",
		UploadURL:      "http://y/put",
		UploadPath:     "v1/out.mp4",
		CallbackURL:    "http://z/cb",
		CallbackSecret: "s",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if job.VideoID != "v1" {
		t.Errorf("expected trimmed id, got %q", job.VideoID)
	}
	if job.Source.URL != "http://x/a.mp4" || job.Dest.URL != "http://y/put" || job.Dest.Path != "v1/out.mp4" {
		t.Errorf("unexpected locators %+v %+v", job.Source, job.Dest)
	}
	if ov, ok := job.Overlay.(TextOverlay); !ok || ov.Text != "Made with Sora AI" {
		t.Errorf("expected default text overlay, got %#v", job.Overlay)
	}
}

func TestParseDirect(t *testing.T) {
	jp := NewJobParser(parserConfig(config.ModeDirect))

	tests := []struct {
		name     string
		req      JobRequest
		wantSrc  ports.ObjectRef
		wantDest ports.ObjectRef
	}{
		{
			name:     "defaults",
			req:      JobRequest{VideoID: "v1", StoragePath: "u1/clip.mov", CallbackURL: "http://z", CallbackSecret: "s"},
			wantSrc:  ports.ObjectRef{Bucket: "uploads", Key: "u1/clip.mov"},
			wantDest: ports.ObjectRef{Bucket: "processed", Key: "v1/processed_clip.mov"},
		},
		{
			name:     "explicit bucket and upload path",
			req:      JobRequest{VideoID: "v1", StoragePath: "clip.mp4", Bucket: "raw", UploadPath: "out/v1.mp4", CallbackURL: "http://z", CallbackSecret: "s"},
			wantSrc:  ports.ObjectRef{Bucket: "raw", Key: "clip.mp4"},
			wantDest: ports.ObjectRef{Bucket: "processed", Key: "out/v1.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := jp.Parse(tt.req)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if job.Source.Ref != tt.wantSrc {
				t.Errorf("source = %v, want %v", job.Source.Ref, tt.wantSrc)
			}
			if job.Dest.Ref != tt.wantDest || job.Dest.Path != tt.wantDest.Key {
				t.Errorf("dest = %+v, want %v", job.Dest, tt.wantDest)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	signed := NewJobParser(parserConfig(config.ModeSignedURL))
	direct := NewJobParser(parserConfig(config.ModeDirect))

	tests := []struct {
		name  string
		jp    *JobParser
		req   JobRequest
		field string
	}{
		{"missing callback secret", signed, JobRequest{VideoID: "v", DownloadURL: "d", UploadURL: "u", UploadPath: "p", CallbackURL: "c"}, "callback_secret"},
		{"missing upload path", signed, JobRequest{VideoID: "v", DownloadURL: "d", UploadURL: "u", CallbackURL: "c", CallbackSecret: "s"}, "upload_path"},
		{"direct fields in signed mode", signed, JobRequest{VideoID: "v", StoragePath: "a.mp4", CallbackURL: "c", CallbackSecret: "s"}, ""},
		{"missing storage path", direct, JobRequest{VideoID: "v", CallbackURL: "c", CallbackSecret: "s"}, "storage_path"},
		{"signed fields in direct mode", direct, JobRequest{VideoID: "v", StoragePath: "a.mp4", DownloadURL: "d", CallbackURL: "c", CallbackSecret: "s"}, ""},
		{"missing callback in direct mode", direct, JobRequest{VideoID: "v", StoragePath: "a.mp4"}, "callback_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.jp.Parse(tt.req)
			if !errors.IsValidation(err) {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
			if tt.field != "" && errors.GetFields(err)["field"] != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, errors.GetFields(err))
			}
		})
	}
}

func TestParseOverlay(t *testing.T) {
	jp := NewJobParser(parserConfig(config.ModeSignedURL))
	base := JobRequest{VideoID: "v", DownloadURL: "d", UploadURL: "u", UploadPath: "p", CallbackURL: "c", CallbackSecret: "s"}

	tests := []struct {
		name string
		logo string
		text string
		want Overlay
	}{
		{"default text", "", "", TextOverlay{Text: "Made with Sora AI"}},
		{"custom text", "", "Hello world", TextOverlay{Text: "Hello world"}},
		{"text is kept literally", "", " Sora: 100%, it's [new] ", TextOverlay{Text: "Sora: 100%, it's [new]"}},
		{"blank text falls back", "", "   ", TextOverlay{Text: "Made with Sora AI"}},
		{"logo wins over text", "http://l/logo.png", "ignored", LogoOverlay{URL: "http://l/logo.png", Width: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.LogoURL = tt.logo
			req.WatermarkText = tt.text

			job, err := jp.Parse(req)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if job.Overlay != tt.want {
				t.Errorf("overlay = %#v, want %#v", job.Overlay, tt.want)
			}
		})
	}
}

func TestParseKeepsCallbackSecret(t *testing.T) {
	jp := NewJobParser(parserConfig(config.ModeSignedURL))
	req := JobRequest{VideoID: "v", DownloadURL: "d", UploadURL: "u", UploadPath: "p", CallbackURL: " c ", CallbackSecret: " s3cret\t"}

	job, err := jp.Parse(req)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if job.CallbackSecret != " s3cret\t" {
		t.Errorf("expected secret unchanged, got %q", job.CallbackSecret)
	}
	if job.CallbackURL != "c" {
		t.Errorf("expected trimmed callback url, got %q", job.CallbackURL)
	}

	req.CallbackSecret = "  "
	if _, err := jp.Parse(req); !errors.IsValidation(err) {
		t.Errorf("expected blank secret to be rejected, got %v", err)
	}
}
