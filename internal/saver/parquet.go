package saver

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"tiingo-bronze/internal/model"
)

// ParquetSaver writes the batch as a single snappy-compressed Parquet file.
// Columns follow model.PriceRow field order; no row-index column is written.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) ContentType() string { return "application/vnd.apache.parquet" }

func (ParquetSaver) Encode(w io.Writer, rows []model.PriceRow) error {
	pw := parquet.NewGenericWriter[model.PriceRow](w, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
