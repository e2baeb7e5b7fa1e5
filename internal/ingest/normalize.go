package ingest

import (
	"fmt"
	"strings"
	"time"

	"tiingo-bronze/internal/bronze"
)

// dateLayouts are the vendor date shapes accepted, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	bronze.DateLayout,
}

// NormalizeDate reduces a vendor date or timestamp to YYYY-MM-DD in its own offset.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(bronze.DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}
