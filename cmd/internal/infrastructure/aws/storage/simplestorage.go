package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object key namespaces, partitioned by asset kind.
const (
	PathImages    = "images/"
	PathDocuments = "documents/"
)

// ProgressFunc receives upload progress as a percentage in [0, 100].
// A nil sink disables reporting; each upload owns its own sink.
type ProgressFunc func(pct float64)

// BlobClient is the blob-store collaborator the upload coordinator talks to.
type BlobClient interface {
	Upload(ctx context.Context, key string, data []byte, contentType string, progress ProgressFunc) error
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
}

type storageClient struct {
	bucket string
	region string
	client *s3.Client
}

// NewStorageClient builds the S3-backed blob client from AWS_S3_REGION and
// S3_BUCKET_NAME.
func NewStorageClient(ctx context.Context) (BlobClient, error) {
	region := os.Getenv("AWS_S3_REGION")
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		return nil, errors.New("S3_BUCKET_NAME is empty")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &storageClient{
		bucket: bucket,
		region: region,
		client: s3.NewFromConfig(cfg),
	}, nil
}

func (s *storageClient) Upload(ctx context.Context, key string, data []byte, contentType string, progress ProgressFunc) error {
	if key == "" {
		return errors.New("object key is empty")
	}

	body := io.Reader(bytes.NewReader(data))
	if progress != nil {
		body = &progressReader{r: body, total: int64(len(data)), sink: progress}
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return err
	}
	if progress != nil {
		// The SDK may buffer reads; make sure the terminal value is exact.
		progress(100)
	}
	return nil
}

func (s *storageClient) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *storageClient) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// progressReader reports the fraction of the payload consumed by the SDK.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	sink  ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 {
		p.read += int64(n)
		pct := float64(p.read) / float64(p.total) * 100
		if pct > 100 {
			pct = 100
		}
		p.sink(pct)
	}
	return n, err
}
