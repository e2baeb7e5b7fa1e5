// Package bronze maps partition coordinates to storage locations and writes partitions there.
//
// Layout:
//
//	<root>/bronze/<domain>/<source>/<table>/date=<YYYY-MM-DD>/part-<part>.<ext>
//	s3://<bucket>/bronze/<domain>/<source>/<table>/date=<YYYY-MM-DD>/part-<part>.<ext>
package bronze

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Protocol selects the storage backend.
type Protocol string

const (
	ProtocolLocal Protocol = "local"
	ProtocolS3    Protocol = "s3"
)

// ParseProtocol normalizes s; empty means local.
func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(strings.ToLower(strings.TrimSpace(s))); p {
	case "", ProtocolLocal:
		return ProtocolLocal, nil
	case ProtocolS3:
		return ProtocolS3, nil
	default:
		return "", &ConfigError{Key: "DATA_PROTOCOL", Reason: fmt.Sprintf("unsupported protocol %q (use local or s3)", s)}
	}
}

// DateLayout is the partition date format.
const DateLayout = "2006-01-02"

// DefaultExtension is used when the resolver is built without one.
const DefaultExtension = "parquet"

// StorageConfig is the storage part of the process configuration.
type StorageConfig struct {
	Protocol string
	Root     string // local root directory
	Bucket   string // s3 bucket
}

// Coordinate identifies exactly one output file.
type Coordinate struct {
	Domain string
	Source string
	Table  string
	Date   string // YYYY-MM-DD
	Part   string // "0000" or a ticker
}

// Location is a resolved write destination.
// Key is always the slash-separated object key starting at "bronze/".
type Location struct {
	Protocol Protocol
	Root     string
	Bucket   string
	Key      string
}

// IsRemote reports whether the location lives in an object store.
func (l Location) IsRemote() bool { return l.Protocol == ProtocolS3 }

// String renders the concrete path (local) or URI (s3).
func (l Location) String() string {
	if l.IsRemote() {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return filepath.Join(l.Root, filepath.FromSlash(l.Key))
}

// Resolver turns coordinates into locations. It has no side effects.
type Resolver struct {
	cfg StorageConfig
	ext string
}

// NewResolver creates a Resolver; ext is the file extension without a dot.
func NewResolver(cfg StorageConfig, ext string) *Resolver {
	if ext == "" {
		ext = DefaultExtension
	}
	return &Resolver{cfg: cfg, ext: ext}
}

// Resolve returns the location of c under the configured protocol.
func (r *Resolver) Resolve(c Coordinate) (Location, error) {
	proto, err := ParseProtocol(r.cfg.Protocol)
	if err != nil {
		return Location{}, err
	}
	bucket := strings.TrimRight(r.cfg.Bucket, "/")
	if proto == ProtocolS3 && bucket == "" {
		return Location{}, &ConfigError{Key: "S3_BUCKET", Reason: "DATA_PROTOCOL is 's3' but S3_BUCKET is not configured"}
	}
	if err := c.validate(); err != nil {
		return Location{}, err
	}

	key := path.Join("bronze", c.Domain, c.Source, c.Table, "date="+c.Date, "part-"+c.Part+"."+r.ext)

	if proto == ProtocolS3 {
		return Location{Protocol: ProtocolS3, Bucket: bucket, Key: key}, nil
	}

	root := r.cfg.Root
	if root == "" {
		root = "."
	}
	return Location{Protocol: ProtocolLocal, Root: root, Key: key}, nil
}

func (c Coordinate) validate() error {
	for _, f := range []struct{ name, v string }{
		{"domain", c.Domain}, {"source", c.Source}, {"table", c.Table}, {"part", c.Part},
	} {
		if strings.TrimSpace(f.v) == "" {
			return fmt.Errorf("partition %s is empty", f.name)
		}
		if strings.ContainsAny(f.v, `/\`) {
			return fmt.Errorf("partition %s %q contains a path separator", f.name, f.v)
		}
	}
	if _, err := time.Parse(DateLayout, c.Date); err != nil {
		return fmt.Errorf("partition date %q is not YYYY-MM-DD: %w", c.Date, err)
	}
	return nil
}
