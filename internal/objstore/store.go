// Package objstore persists encoded partitions to the local filesystem or S3.
package objstore

import (
	"context"
	"fmt"
)

// Object is one write request. Bucket is ignored by the file client.
type Object struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
	Metadata    map[string]string
}

// Client writes whole objects, replacing anything already stored under the same key.
type Client interface {
	PutObject(ctx context.Context, obj Object) error
}

// Config selects and configures a Client.
type Config struct {
	Protocol string // local | s3
	Root     string
	S3       S3Config
}

// NewClient creates the Client for cfg.Protocol.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Protocol {
	case "local", "":
		return NewFileClient(cfg.Root), nil
	case "s3":
		return NewS3Client(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage protocol: %s", cfg.Protocol)
	}
}
