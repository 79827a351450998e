package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader pushes finished exports to S3 for the ops handoff bucket.
type Uploader struct {
	client s3API
}

// NewUploader builds an uploader using the default credential chain.
func NewUploader(ctx context.Context, region string) (*Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &Uploader{client: s3.NewFromConfig(cfg)}, nil
}

// SetClient overrides the S3 client. Used in tests.
func (u *Uploader) SetClient(client s3API) {
	u.client = client
}

// Upload writes the CSV bytes to s3://bucket/key with a text/csv content type.
func (u *Uploader) Upload(ctx context.Context, bucket, key string, data []byte) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("uploading to s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
