package lineage

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hex12 = regexp.MustCompile(`^[0-9a-f]{12}$`)

func TestRunIDFrom(t *testing.T) {
	id := RunIDFrom(1758585600000000000, 4242)
	require.Regexp(t, hex12, id)

	// same inputs, same id
	assert.Equal(t, id, RunIDFrom(1758585600000000000, 4242))
	// prefix of the full digest
	assert.Equal(t, SHA256Bytes([]byte("1758585600000000000-4242"))[:12], id)

	assert.NotEqual(t, id, RunIDFrom(1758585600000000001, 4242))
	assert.NotEqual(t, id, RunIDFrom(1758585600000000000, 4243))
}

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	require.Regexp(t, hex12, a)
	time.Sleep(time.Microsecond)
	assert.NotEqual(t, a, NewRunID())
}

func TestSHA256Bytes(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256Bytes(nil))
}

func TestFormatUTC(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	ts := time.Date(2025, 9, 22, 20, 15, 30, 999_000_000, loc)
	assert.Equal(t, "2025-09-23T01:15:30Z", FormatUTC(ts))
}
