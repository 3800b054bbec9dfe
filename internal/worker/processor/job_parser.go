package processor

import (
	"path"
	"strings"

	"vidmark/internal/config"
	"vidmark/internal/pkg/errors"
	"vidmark/internal/ports"
)

type JobParser struct {
	mode          config.AddressingMode
	inputBucket   string
	outputBucket  string
	watermarkText string
	logoWidth     int
}

func NewJobParser(cfg config.Config) *JobParser {
	return &JobParser{
		mode:          cfg.Mode,
		inputBucket:   cfg.InputBucket,
		outputBucket:  cfg.OutputBucket,
		watermarkText: cfg.WatermarkText,
		logoWidth:     cfg.LogoWidth,
	}
}

// Parse validates presence of the required fields and builds a Job. It does
// no I/O: URL reachability is left to the fetch and delivery stages.
func (jp *JobParser) Parse(req JobRequest) (Job, error) {
	req = trimRequest(req)

	if req.VideoID == "" {
		return Job{}, errors.ValidationField("video_id", "video_id is required")
	}
	if req.CallbackURL == "" {
		return Job{}, errors.ValidationField("callback_url", "callback_url is required")
	}
	if strings.TrimSpace(req.CallbackSecret) == "" {
		return Job{}, errors.ValidationField("callback_secret", "callback_secret is required")
	}

	job := Job{
		VideoID:        req.VideoID,
		Mode:           jp.mode,
		CallbackURL:    req.CallbackURL,
		CallbackSecret: req.CallbackSecret,
		Overlay:        jp.overlay(req),
	}

	var err error
	switch jp.mode {
	case config.ModeDirect:
		err = jp.parseDirect(req, &job)
	default:
		err = jp.parseSignedURL(req, &job)
	}
	if err != nil {
		return Job{}, err
	}
	return job, nil
}

func (jp *JobParser) parseSignedURL(req JobRequest, job *Job) error {
	if req.StoragePath != "" || req.Bucket != "" {
		return errors.Validation("storage_path and bucket are not accepted in signed_url mode")
	}
	if req.DownloadURL == "" {
		return errors.ValidationField("download_url", "download_url is required")
	}
	if req.UploadURL == "" {
		return errors.ValidationField("upload_url", "upload_url is required")
	}
	if req.UploadPath == "" {
		return errors.ValidationField("upload_path", "upload_path is required")
	}

	job.Source = Source{URL: req.DownloadURL}
	job.Dest = Destination{URL: req.UploadURL, Path: req.UploadPath}
	return nil
}

func (jp *JobParser) parseDirect(req JobRequest, job *Job) error {
	if req.DownloadURL != "" || req.UploadURL != "" {
		return errors.Validation("download_url and upload_url are not accepted in direct mode")
	}
	if req.StoragePath == "" {
		return errors.ValidationField("storage_path", "storage_path is required")
	}

	bucket := req.Bucket
	if bucket == "" {
		bucket = jp.inputBucket
	}

	dest := req.UploadPath
	if dest == "" {
		dest = path.Join(req.VideoID, "processed_"+path.Base(req.StoragePath))
	}

	job.Source = Source{Ref: ports.ObjectRef{Bucket: bucket, Key: req.StoragePath}}
	job.Dest = Destination{
		Ref:  ports.ObjectRef{Bucket: jp.outputBucket, Key: dest},
		Path: dest,
	}
	return nil
}

// overlay picks the logo variant whenever a logo is supplied.
func (jp *JobParser) overlay(req JobRequest) Overlay {
	if req.LogoURL != "" {
		return LogoOverlay{URL: req.LogoURL, Width: jp.logoWidth}
	}

	text := strings.TrimSpace(req.WatermarkText)
	if text == "" {
		text = strings.TrimSpace(jp.watermarkText)
	}
	return TextOverlay{Text: text}
}

// trimRequest drops surrounding whitespace from identifiers and locators. The
// callback secret is echoed back byte for byte and is left alone.
func trimRequest(r JobRequest) JobRequest {
	r.VideoID = strings.TrimSpace(r.VideoID)
	r.DownloadURL = strings.TrimSpace(r.DownloadURL)
	r.UploadURL = strings.TrimSpace(r.UploadURL)
	r.StoragePath = strings.TrimSpace(r.StoragePath)
	r.Bucket = strings.TrimSpace(r.Bucket)
	r.UploadPath = strings.TrimSpace(r.UploadPath)
	r.CallbackURL = strings.TrimSpace(r.CallbackURL)
	r.LogoURL = strings.TrimSpace(r.LogoURL)
	return r
}
