package bronze

import (
	"bytes"
	"context"
	"errors"
	"strconv"

	"tiingo-bronze/internal/lineage"
	"tiingo-bronze/internal/model"
	"tiingo-bronze/internal/objstore"
	"tiingo-bronze/internal/saver"
)

const writerName = "tiingo-bronze"

// ErrEmptyBatch is returned for a batch without rows.
var ErrEmptyBatch = errors.New("empty batch")

// Writer encodes a batch and stores it at a resolved location, replacing any previous file.
type Writer struct {
	enc    saver.Encoder
	local  objstore.Client
	remote objstore.Client
}

// NewWriter creates a Writer. Either client may be nil when its protocol is not in use.
func NewWriter(enc saver.Encoder, local, remote objstore.Client) *Writer {
	return &Writer{enc: enc, local: local, remote: remote}
}

// Write persists rows at loc. It never appends and never retries.
func (w *Writer) Write(ctx context.Context, rows []model.PriceRow, loc Location) error {
	if len(rows) == 0 {
		return &StorageError{Op: "encode", Location: loc.String(), Err: ErrEmptyBatch}
	}

	var buf bytes.Buffer
	if err := w.enc.Encode(&buf, rows); err != nil {
		return &StorageError{Op: "encode", Location: loc.String(), Err: err}
	}

	client := w.local
	if loc.IsRemote() {
		client = w.remote
	}
	if client == nil {
		return &StorageError{Op: "write", Location: loc.String(), Err: errors.New("no storage client for protocol " + string(loc.Protocol))}
	}

	obj := objstore.Object{
		Bucket:      loc.Bucket,
		Key:         loc.Key,
		Body:        buf.Bytes(),
		ContentType: w.enc.ContentType(),
		Metadata: map[string]string{
			"writer": writerName,
			"rows":   strconv.Itoa(len(rows)),
			"sha256": lineage.SHA256Bytes(buf.Bytes()),
		},
	}
	if err := client.PutObject(ctx, obj); err != nil {
		return &StorageError{Op: "write", Location: loc.String(), Err: err}
	}
	return nil
}
