package saver

import (
	"io"
	"strings"

	"tiingo-bronze/internal/model"
)

// Encoder serializes one partition batch.
// Callers decide where the bytes go (local file or object store); encoders only see an io.Writer.
type Encoder interface {
	Encode(w io.Writer, rows []model.PriceRow) error
	Extension() string
	ContentType() string
}

// NewEncoder creates implementation by format (parquet, csv, json).
// Returns nil if format not supported.
func NewEncoder(format string) Encoder {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "parquet", "":
		return ParquetSaver{}
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}
