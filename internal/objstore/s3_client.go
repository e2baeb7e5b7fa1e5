package objstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// defaultRegion is used when neither the config nor the AWS environment names one.
const defaultRegion = "us-east-1"

// S3Config holds optional overrides; unset fields fall back to the AWS default chain.
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // S3-compatible endpoint, e.g. MinIO
	Region    string
}

// S3Client uploads objects with the S3 upload manager (multipart for large bodies).
type S3Client struct {
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Client builds a client from the default AWS config plus cfg overrides.
// Static credentials are used only when both keys are set.
func NewS3Client(ctx context.Context, cfg S3Config) (*S3Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = defaultRegion
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &S3Client{
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// PutObject uploads obj, replacing any existing object under the same key.
func (c *S3Client) PutObject(ctx context.Context, obj Object) error {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(obj.Bucket),
		Key:         aws.String(obj.Key),
		Body:        bytes.NewReader(obj.Body),
		ContentType: aws.String(obj.ContentType),
		Metadata:    obj.Metadata,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			slog.Debug("s3 upload rejected", "bucket", obj.Bucket, "key", obj.Key, "code", apiErr.ErrorCode())
		}
		return fmt.Errorf("upload s3://%s/%s: %w", obj.Bucket, obj.Key, err)
	}
	return nil
}
