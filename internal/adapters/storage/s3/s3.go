// Package s3 stores objects in Amazon S3 or any S3-compatible endpoint
// (MinIO, Supabase storage's S3 gateway).
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"vidmark/internal/ports"
)

type Options struct {
	Region         string
	Endpoint       string
	ForcePathStyle bool
	// Static credentials. When empty the SDK default chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// Client implements ports.ObjectStore on top of the S3 API.
type Client struct {
	api      s3iface.S3API
	uploader *s3manager.Uploader
}

func New(opts Options) (*Client, error) {
	awsCfg := aws.NewConfig().
		WithRegion(opts.Region).
		WithS3ForcePathStyle(opts.ForcePathStyle)
	if opts.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(opts.Endpoint)
	}
	if opts.AccessKeyID != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(opts.AccessKeyID, opts.SecretAccessKey, ""))
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("s3 session: %w", err)
	}
	return NewWithAPI(s3.New(sess)), nil
}

// NewWithAPI wraps an existing S3 client.
func NewWithAPI(api s3iface.S3API) *Client {
	return &Client{
		api:      api,
		uploader: s3manager.NewUploaderWithClient(api),
	}
}

func (c *Client) Provider() string { return "s3" }

func (c *Client) PutObject(ctx context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	if in.Ref.Bucket == "" || in.Ref.Key == "" {
		return ports.PutObjectOutput{}, fmt.Errorf("bucket and key are required")
	}

	input := &s3manager.UploadInput{
		Bucket: aws.String(in.Ref.Bucket),
		Key:    aws.String(in.Ref.Key),
		Body:   in.Reader,
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}

	if _, err := c.uploader.UploadWithContext(ctx, input); err != nil {
		return ports.PutObjectOutput{}, fmt.Errorf("s3 upload %s: %w", in.Ref, err)
	}
	return ports.PutObjectOutput{Key: in.Ref.Key, Size: in.Size}, nil
}

func (c *Client) GetObject(ctx context.Context, ref ports.ObjectRef) (rc io.ReadCloser, contentType string, size int64, err error) {
	out, err := c.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		return nil, "", 0, fmt.Errorf("s3 get %s: %w", ref, err)
	}
	return out.Body, aws.StringValue(out.ContentType), aws.Int64Value(out.ContentLength), nil
}
