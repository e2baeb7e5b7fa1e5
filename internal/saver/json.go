package saver

import (
	"encoding/json"
	"io"

	"tiingo-bronze/internal/model"
)

// JSONSaver writes the batch as an indented JSON array of rows.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) ContentType() string { return "application/json" }

func (JSONSaver) Encode(w io.Writer, rows []model.PriceRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
