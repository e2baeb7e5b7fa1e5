package objstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileClient stores objects as files under base; keys are slash-separated relative paths.
type FileClient struct {
	base string
}

// NewFileClient returns a client rooted at base ("" means the working directory).
func NewFileClient(base string) *FileClient {
	if base == "" {
		base = "."
	}
	return &FileClient{base: base}
}

// Path returns the file path for key.
func (c *FileClient) Path(key string) string {
	return filepath.Join(c.base, filepath.FromSlash(key))
}

// PutObject writes obj.Body to a temp sibling and renames it over the destination.
func (c *FileClient) PutObject(ctx context.Context, obj Object) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := c.Path(obj.Key)
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(dst)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(obj.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("rename to %s: %w", dst, err)
	}
	return nil
}
