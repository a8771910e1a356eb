package report

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Veraticus/aishield/pkg/logger"
)

// PutObjectAPI is the subset of the S3 client used for publishing.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads generated report files to a bucket.
type S3Publisher struct {
	client PutObjectAPI
	logger logger.Logger
	bucket string
	prefix string
}

// NewS3Publisher creates a publisher writing under prefix in bucket.
func NewS3Publisher(client PutObjectAPI, bucket, prefix string, log logger.Logger) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, prefix: prefix, logger: log}
}

// Key returns the object key a local file is published under.
func (p *S3Publisher) Key(localPath string) string {
	return path.Join(p.prefix, filepath.Base(localPath))
}

// Publish uploads each file and returns the s3:// URIs written.
func (p *S3Publisher) Publish(ctx context.Context, files ...string) ([]string, error) {
	uris := make([]string, 0, len(files))
	for _, f := range files {
		uri, err := p.publishOne(ctx, f)
		if err != nil {
			return uris, err
		}
		uris = append(uris, uri)
	}
	return uris, nil
}

func (p *S3Publisher) publishOne(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath) //nolint:gosec // Path was produced by a report format
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			p.logger.Warn("failed to close published file", "path", localPath, "error", cerr)
		}
	}()

	key := p.Key(localPath)
	input := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("uploading %s to s3://%s/%s: %w", localPath, p.bucket, key, err)
	}

	uri := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	p.logger.Info("Published report", "uri", uri)
	return uri, nil
}
