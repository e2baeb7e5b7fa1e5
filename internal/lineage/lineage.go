// Package lineage produces the tags that tie landed rows back to the run that wrote them.
package lineage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// RunIDLength is the number of hex characters kept from the hash.
const RunIDLength = 12

// TimestampLayout is the ingest_ts_utc format.
const TimestampLayout = "2006-01-02T15:04:05Z"

// NewRunID derives a run id from the current time and process id.
func NewRunID() string {
	return RunIDFrom(time.Now().UnixNano(), os.Getpid())
}

// RunIDFrom hashes "<nanos>-<pid>" and truncates to RunIDLength hex characters.
func RunIDFrom(nanos int64, pid int) string {
	return SHA256Bytes([]byte(fmt.Sprintf("%d-%d", nanos, pid)))[:RunIDLength]
}

// SHA256Bytes returns the hex sha256 of b.
func SHA256Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// FormatUTC formats t as ingest_ts_utc (second precision, UTC).
func FormatUTC(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
