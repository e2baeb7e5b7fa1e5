// Package universe turns user input and seed files into the list of tickers to ingest.
package universe

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSeedFile is the nightly ticker list.
const DefaultSeedFile = "config/tiingo_universe_seed.txt"

// ParseList splits a comma-separated list of tickers.
func ParseList(s string) []string {
	return Normalize(strings.Split(s, ","))
}

// Normalize trims and uppercases tickers, dropping empties and duplicates while keeping order.
func Normalize(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	var out []string
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// LoadFile reads a list of tickers from a file.
// Supported formats:
//   - .txt  : one ticker per line, '#' lines are treated as comments
//   - .json : JSON array of strings
func LoadFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ticker file %s: %w", path, err)
	}

	var tickers []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(content, &tickers); err != nil {
			return nil, fmt.Errorf("parse JSON %s: %w", path, err)
		}
	case ".txt", "":
		tickers = parseText(string(content))
	default:
		return nil, fmt.Errorf("unsupported ticker file extension %q (use .txt or .json)", filepath.Ext(path))
	}

	unique := Normalize(tickers)
	slog.Info("loaded tickers from file", "count", len(unique), "path", path)
	return unique, nil
}

// parseText parses a plain text representation of tickers
// where each non-empty, non-comment line represents a ticker.
func parseText(s string) []string {
	var tickers []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			tickers = append(tickers, line)
		}
	}
	return tickers
}
